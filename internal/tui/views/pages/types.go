package pages

import (
	"github.com/colonyops/riffle/internal/core/page"
)

// PagesAddedMsg reports pages imported from the capture inbox.
type PagesAddedMsg struct {
	Pages []page.Page
}

// CaptureDoneMsg reports the capture command finishing.
type CaptureDoneMsg struct {
	Err error
}

// InboxChangedMsg reports new matching files landing in the inbox.
type InboxChangedMsg struct {
	Paths []string
}

// FinishedMsg reports the batch being finalized; the program should exit
// after receiving it.
type FinishedMsg struct {
	Pages []page.Page
	Err   error
}

// StatusMsg sets a transient status line message.
type StatusMsg struct {
	Text  string
	IsErr bool
}
