package config

import "strings"

// AppVersion is the version of the application. Set from version.txt during build.
var AppVersion string

// AppName is the name of the application.
const AppName = "Bakgrunnskart"

// AppID is the Fyne application identifier.
const AppID = "no.geonorge.bakgrunnskart"

// LayerGroupName is the layer group all basemap layers are inserted under.
const LayerGroupName = "Bakgrunnskart"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"
