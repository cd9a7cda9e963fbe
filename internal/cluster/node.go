package cluster

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"time"

	"movierec/internal/logging"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/service"

	"github.com/goccy/go-json"
)

// Recommender is the part of service.RecommendService a node needs.
type Recommender interface {
	Recommend(ctx context.Context, req service.RecRequest) (*models.RecResult, error)
}

// Node answers QueryTasks over TCP. A connection may carry any number of
// tasks; each gets exactly one response, in order.
type Node struct {
	ID  string
	Svc Recommender
}

// Serve accepts connections until ln is closed or ctx is done.
func (n *Node) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			logging.Warn().Err(err).Str("node", n.ID).Msg("[node] accept error")
			continue
		}
		go n.handleConn(ctx, conn)
	}
}

func (n *Node) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	dec := json.NewDecoder(bufio.NewReader(conn))
	enc := json.NewEncoder(conn)
	for {
		var task QueryTask
		if err := dec.Decode(&task); err != nil {
			if !errors.Is(err, io.EOF) {
				logging.Warn().Err(err).Str("node", n.ID).Msg("[node] decode task error")
				_ = enc.Encode(&QueryResponse{NodeID: n.ID, Status: StatusError, Error: "bad task: " + err.Error()})
			}
			return
		}

		resp := n.Answer(ctx, &task)
		if err := enc.Encode(resp); err != nil {
			logging.Warn().Err(err).Str("node", n.ID).Msg("[node] encode response error")
			return
		}
	}
}

// Answer runs one task against the index.
func (n *Node) Answer(ctx context.Context, task *QueryTask) *QueryResponse {
	start := time.Now()
	res, err := n.Svc.Recommend(ctx, service.RecRequest{
		Query:   task.Query,
		K:       task.K,
		Refresh: task.Refresh,
		Surface: "tcp",
	})

	resp := &QueryResponse{NodeID: n.ID, TookMS: time.Since(start).Milliseconds()}
	switch {
	case errors.Is(err, recommend.ErrEmptyQuery):
		resp.Status = StatusEmpty
	case errors.Is(err, recommend.ErrNoMatch):
		resp.Status = StatusNotFound
		resp.Error = err.Error()
	case err != nil:
		resp.Status = StatusError
		resp.Error = err.Error()
	default:
		resp.Status = StatusOK
		resp.Result = res
	}

	logging.Info().
		Str("node", n.ID).
		Str("query", task.Query).
		Str("status", resp.Status).
		Int64("took_ms", resp.TookMS).
		Msg("[node] task done")
	return resp
}
