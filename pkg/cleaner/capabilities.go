package cleaner

// Capabilities records which optional operations a cleaner implements.
type Capabilities struct {
	DownloadFrame bool
	DownloadPath  bool
	CleanFrame    bool
	CleanPath     bool
}

// Runnable reports whether the set can satisfy at least one full
// download+clean path.
func (c Capabilities) Runnable() bool {
	return (c.DownloadFrame || c.DownloadPath) && (c.CleanFrame || c.CleanPath)
}

// Probe derives a cleaner's capability set by interface assertion alone.
// It never invokes any operation: download and clean methods may have side
// effects (network calls, staging files) so "call it and see" is not an
// acceptable way to detect support. An all-false result is valid and means
// the cleaner is not runnable.
func Probe(c Cleaner) Capabilities {
	var caps Capabilities
	_, caps.DownloadFrame = c.(FrameDownloader)
	_, caps.DownloadPath = c.(PathDownloader)
	_, caps.CleanFrame = c.(FrameCleaner)
	_, caps.CleanPath = c.(PathCleaner)
	return caps
}
