package cluster

import (
	"bufio"
	"context"
	"fmt"
	"net"

	"github.com/goccy/go-json"
)

// SendTask dials addr, writes task and waits for a single response.
func SendTask(ctx context.Context, addr string, task *QueryTask) (*QueryResponse, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	enc := json.NewEncoder(conn)
	if err := enc.Encode(task); err != nil {
		return nil, fmt.Errorf("send task: %w", err)
	}

	dec := json.NewDecoder(bufio.NewReader(conn))
	var resp QueryResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &resp, nil
}
