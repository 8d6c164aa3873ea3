// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"io"
	"log"
	"os"

	shellquote "github.com/kballard/go-shellquote"
)

var (
	cmdLog, actLog *log.Logger
	cmdOn, actOn   = false, true
)

func init() {
	cmdLog = log.New(os.Stderr, "[cmd] ", 0)
	actLog = log.New(os.Stderr, "[binbench] ", 0)
}

// SetOutput redirects both the activity log and the invocation trace.
func SetOutput(w io.Writer) {
	cmdLog.SetOutput(w)
	actLog.SetOutput(w)
}

// SetCommandTrace turns printing of the invocation by TraceInvocation on or off.
func SetCommandTrace(on bool) {
	cmdOn = on
}

// SetActivityLog turns the activity log on or off.
func SetActivityLog(on bool) {
	actOn = on
}

// TraceInvocation prints args as a shell command line that reproduces
// the current run.
func TraceInvocation(args []string) {
	if !cmdOn {
		return
	}
	cmdLog.Print(shellquote.Join(args...))
}

// Printf writes to the activity log unless it is off.
func Printf(format string, args ...interface{}) {
	if !actOn {
		return
	}
	actLog.Printf(format, args...)
}

// Print is like Printf but formats its arguments as fmt.Print does.
func Print(args ...interface{}) {
	if !actOn {
		return
	}
	actLog.Print(args...)
}

// Warnf is like Printf but is never silenced.
func Warnf(format string, args ...interface{}) {
	actLog.Printf("warning: "+format, args...)
}

// Error reports err on the activity log, even when it is off.
func Error(err error) {
	actLog.Printf("error: %v", err)
}
