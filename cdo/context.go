// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package cdo provides context dependent objects: containers whose
// mutations are undone when the search backtracks past the level at
// which they were made.
//
// A Context is a stack of levels, like the decision levels of a trail.
// Push opens a level, Pop undoes every mutation made since the matching
// Push.  Mutations at level 0 are permanent and are not logged.
package cdo

// Context records undo actions of the objects created on it.
type Context struct {
	level int
	undo  []func()
	marks []int
}

// New creates a context at level 0.
func New() *Context {
	return &Context{}
}

// Level returns the current level of c.
func (c *Context) Level() int {
	return c.level
}

// Push opens a new level.
func (c *Context) Push() {
	c.marks = append(c.marks, len(c.undo))
	c.level++
}

// Pop undoes all mutations since the last Push.
func (c *Context) Pop() {
	if c.level == 0 {
		panic("cdo: pop at level 0")
	}
	n := len(c.marks) - 1
	mark := c.marks[n]
	for i := len(c.undo) - 1; i >= mark; i-- {
		c.undo[i]()
		c.undo[i] = nil
	}
	c.undo = c.undo[:mark]
	c.marks = c.marks[:n]
	c.level--
}

// PopTo pops levels until the level is at most level.
func (c *Context) PopTo(level int) {
	for c.level > level {
		c.Pop()
	}
}

func (c *Context) record(f func()) {
	if c.level == 0 {
		return
	}
	c.undo = append(c.undo, f)
}
