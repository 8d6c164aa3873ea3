// Copyright 2026 The Binbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"fmt"
	"strings"

	"github.com/binbench/binbench/common/fileutil"
)

// NotFoundError reports a named input path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Path)
}

// NoOverlapError reports partitions that share no item.
type NoOverlapError struct {
	Names []string
}

func (e *NoOverlapError) Error() string {
	return fmt.Sprintf("no items shared between %s", strings.Join(e.Names, ", "))
}

// MalformedError reports a partition file with too many rows that do not
// parse into an (item, label) pair.
type MalformedError struct {
	Path  string
	Bad   int
	Total int
	// Line is the first malformed line.
	Line int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %d of %d rows malformed (first at line %d)", e.Path, e.Bad, e.Total, e.Line)
}

// CheckExists returns a *NotFoundError if nothing exists at path.
func CheckExists(path string) error {
	ok, err := fileutil.FileExists(path)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Path: path}
	}
	return nil
}
