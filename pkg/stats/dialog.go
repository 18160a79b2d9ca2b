package stats

import "github.com/kerbaras/mangastats/pkg/data"

// Dialog is the overlay currently shown on the stats screen. A nil Dialog
// means none is open.
type Dialog interface {
	isDialog()
}

// DeleteDialog asks for confirmation before deleting the downloads of Entries.
type DeleteDialog struct {
	Entries []Entry
}

// OperationDialog details one ledger record.
type OperationDialog struct {
	Op data.DownloadStatOperation
}

// MultiOperationDialog details the records of one graph bucket.
type MultiOperationDialog struct {
	Ops []data.DownloadStatOperation
}

// SeriesStartDialog explains the first graph point.
type SeriesStartDialog struct {
	Balance int64
}

// SettingsDialog holds sort, group and visibility settings.
type SettingsDialog struct{}

func (DeleteDialog) isDialog()         {}
func (OperationDialog) isDialog()      {}
func (MultiOperationDialog) isDialog() {}
func (SeriesStartDialog) isDialog()    {}
func (SettingsDialog) isDialog()       {}
