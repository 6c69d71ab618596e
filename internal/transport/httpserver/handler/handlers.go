package handler

import (
	"cepip-app-go/internal/transport/httpserver/handler/common"
	"cepip-app-go/internal/transport/httpserver/handler/records"
	"cepip-app-go/internal/transport/httpserver/handler/relations"
)

type Handlers struct {
	Common    *common.Handlers
	Records   *records.Handlers
	Relations *relations.Handlers
}

func New(common *common.Handlers, records *records.Handlers, relations *relations.Handlers) *Handlers {
	return &Handlers{
		Common:    common,
		Records:   records,
		Relations: relations,
	}
}
