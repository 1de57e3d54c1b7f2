package commands

// Error messages
const (
	ErrAmendServiceUnavailable   = "amend service unavailable"
	ErrAnalyzeServiceUnavailable = "analyze service unavailable"
	ErrDoctorServiceUnavailable  = "doctor service unavailable"
)

// User messages
const (
	MsgBundleNotFound   = "Bundle was not found."
	MsgBundleNotArchive = "Bundle is not an .xcarchive."
	MsgDoctorHeader     = "Doctor summary (to see all details, run doctor --verbose):"
)
