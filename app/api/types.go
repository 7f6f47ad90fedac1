package api

import (
	"github.com/vibetools/trendscout/app/history"
)

type Handler struct {
	dataDir string
	history history.Repository
	version string
}
