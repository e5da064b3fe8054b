// Package context bundles a context.Context with its CancelFunc so a single
// value can be stored and cancelled later without threading both through
// separate fields. pool.Controller uses it to stop its periodic
// stats-logging goroutine on Close.
package context

import "context"

// CtxCancel pairs a derived context with the CancelFunc that stops it.
type CtxCancel struct {
	Ctx    context.Context
	Cancel context.CancelFunc
}

func NewContextWithCancel(parent context.Context) *CtxCancel {
	ctx, cancel := context.WithCancel(parent)
	return &CtxCancel{
		Ctx:    ctx,
		Cancel: cancel,
	}
}
