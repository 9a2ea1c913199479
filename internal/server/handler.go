package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/sourcegraph/jsonrpc2"

	"symline/internal/controller"
	"symline/pkg/types"
)

// Editor-to-engine notification methods.
const (
	MethodCursorIdle    = "symline/cursorIdle"
	MethodConfigChanged = "symline/configChanged"
	MethodClick         = "symline/click"
)

type cursorIdleParams struct {
	Bufnr     int    `json:"bufnr"`
	URI       string `json:"uri"`
	Line      int    `json:"line"`
	Character int    `json:"character"`
}

type clickParams struct {
	Token  int    `json:"token"`
	Button string `json:"button"`
}

// dispatchHandler routes inbound editor notifications to the
// controller. The controller is bound after the connection exists
// because the host half of the controller needs the connection first.
type dispatchHandler struct {
	ctrl *controller.Controller
}

func (h *dispatchHandler) bind(ctrl *controller.Controller) {
	h.ctrl = ctrl
}

func (h *dispatchHandler) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	if h.ctrl == nil {
		return nil, nil
	}
	if !req.Notif {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not handled: " + req.Method}
	}

	switch req.Method {
	case MethodCursorIdle:
		var params cursorIdleParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		h.ctrl.OnCursorIdle(params.Bufnr, params.URI, types.Position{
			Line:      params.Line,
			Character: params.Character,
		})
	case MethodConfigChanged:
		h.ctrl.OnConfigChanged()
	case MethodClick:
		var params clickParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		h.ctrl.OnClick(params.Token, types.MouseButton(params.Button))
	default:
		slog.Debug("Ignoring unknown notification", "method", req.Method)
	}
	return nil, nil
}

func unmarshalParams(req *jsonrpc2.Request, dst any) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, dst); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}
