package controller

import (
	"github.com/ziadkadry99/commentsync/internal/comments"
)

// View displays the controller's state. Calls arrive one at a time, in
// the order refreshes were issued, with the controller lock held: a View
// must not call back into the Controller synchronously.
type View interface {
	// Loading is called when a refresh is issued.
	Loading(p Preferences)
	// Render replaces everything displayed with list.
	Render(list []comments.Comment, p Preferences)
	// Fail reports a failed refresh or mutation. The displayed list stays.
	Fail(err *SyncError)
}

type multiView []View

// Views fans every call out to each of vs in order.
func Views(vs ...View) View { return multiView(vs) }

func (m multiView) Loading(p Preferences) {
	for _, v := range m {
		v.Loading(p)
	}
}

func (m multiView) Render(list []comments.Comment, p Preferences) {
	for _, v := range m {
		v.Render(list, p)
	}
}

func (m multiView) Fail(err *SyncError) {
	for _, v := range m {
		v.Fail(err)
	}
}

type nopView struct{}

func (nopView) Loading(Preferences)                    {}
func (nopView) Render([]comments.Comment, Preferences) {}
func (nopView) Fail(*SyncError)                        {}
