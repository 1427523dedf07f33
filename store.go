package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Every persisted line is a tag, a separator and the item text. Both the
// reader and the writer go through linePrefix so the offset cannot drift.
const (
	pendingTag   = "TODO"
	completedTag = "DONE"
	tagSeparator = ": "
)

func linePrefix(tag string) string {
	return tag + tagSeparator
}

// TaskList holds the pending and completed items and the file they live in.
// Every mutator rewrites the backing file before it returns.
type TaskList struct {
	path      string
	pending   []string
	completed []string
}

// Load reads the task list stored at path. A missing file yields an empty
// list; any other read failure is returned.
func Load(path string) (*TaskList, error) {
	list := &TaskList{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		// Created on first flush
		logger.Info("no task file yet", "path", path)
		return list, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	list.parse(string(data))
	logger.Info("loaded task file", "path", path, "pending", len(list.pending), "completed", len(list.completed))
	return list, nil
}

func (l *TaskList) parse(data string) {
	todoPrefix := linePrefix(pendingTag)
	donePrefix := linePrefix(completedTag)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, todoPrefix):
			l.pending = append(l.pending, line[len(todoPrefix):])
		case strings.HasPrefix(line, donePrefix):
			l.completed = append(l.completed, line[len(donePrefix):])
		}
	}
}

// Path returns the backing file path.
func (l *TaskList) Path() string { return l.path }

// Pending returns a copy of the pending items in display order.
func (l *TaskList) Pending() []string { return append([]string(nil), l.pending...) }

// Completed returns a copy of the completed items in completion order.
func (l *TaskList) Completed() []string { return append([]string(nil), l.completed...) }

func (l *TaskList) PendingLen() int   { return len(l.pending) }
func (l *TaskList) CompletedLen() int { return len(l.completed) }

// AddPending appends text to the pending items.
func (l *TaskList) AddPending(text string) error {
	l.pending = append(l.pending, text)
	logger.Debug("added pending item", "index", len(l.pending)-1)
	return l.flush()
}

// CompletePending moves the pending item at index to the end of the
// completed items. Out of range indices are ignored.
func (l *TaskList) CompletePending(index int) error {
	if index < 0 || index >= len(l.pending) {
		return nil
	}
	item := l.pending[index]
	l.pending = append(l.pending[:index], l.pending[index+1:]...)
	l.completed = append(l.completed, item)
	logger.Debug("completed pending item", "index", index)
	return l.flush()
}

// RemovePending deletes the pending item at index. Out of range indices are
// ignored.
func (l *TaskList) RemovePending(index int) error {
	if index < 0 || index >= len(l.pending) {
		return nil
	}
	l.pending = append(l.pending[:index], l.pending[index+1:]...)
	logger.Debug("removed pending item", "index", index)
	return l.flush()
}

// ClearCompleted drops every completed item.
func (l *TaskList) ClearCompleted() error {
	l.completed = nil
	logger.Debug("cleared completed items")
	return l.flush()
}

// String serializes the list in its on-disk form.
func (l *TaskList) String() string {
	var builder strings.Builder
	writeLines(&builder, linePrefix(pendingTag), l.pending)
	writeLines(&builder, linePrefix(completedTag), l.completed)
	return builder.String()
}

func writeLines(builder *strings.Builder, prefix string, items []string) {
	for _, item := range items {
		builder.WriteString(prefix)
		builder.WriteString(item)
		builder.WriteString("\n")
	}
}

// flush overwrites the backing file with the current state.
func (l *TaskList) flush() error {
	if err := os.WriteFile(l.path, []byte(l.String()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", l.path, err)
	}
	logger.Debug("flushed task file", "path", l.path, "pending", len(l.pending), "completed", len(l.completed))
	return nil
}
