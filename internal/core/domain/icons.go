package domain

// Builtin icon names as stored in the BUILTIN attribute of icon
// elements. The list covers the icons the editor exposes on its
// default toolbar; any other name is passed through unchanged.
const (
	IconExclamation = "yes"
	IconList        = "list"
	IconQuestion    = "help"
	IconChecked     = "button_ok"
	IconBookmark    = "bookmark"
	IconPrio1       = "full-1"
	IconPrio2       = "full-2"
)
