package store

import (
	"github.com/nguyentantai21042004/meetlog/internal/logger"
)

const defaultSheet = "Sheet1"

type implStore struct {
	path   string
	sheet  string
	logger logger.Logger
}

// New creates a Store backed by the .xlsx workbook at path.
// sheet names the worksheet used when the workbook is created.
func New(path, sheet string, log logger.Logger) Store {
	if sheet == "" {
		sheet = defaultSheet
	}
	return &implStore{
		path:   path,
		sheet:  sheet,
		logger: log,
	}
}

func (s *implStore) Path() string {
	return s.path
}
