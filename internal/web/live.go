package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/codejam/internal/autoplay"
	"github.com/vovakirdan/codejam/internal/economy"
)

const (
	writeWait = 10 * time.Second
	sender    = "codejam"
)

// handleLive upgrades to a websocket and streams a simulated jam as it
// plays: one "snapshot" frame every `every` ticks (default one per
// simulated second), then a "done" frame with the run summary. Closing
// the socket stops the run.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	opts, strategy, err := s.runOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	every, err := queryInt(r, "every", s.cfg.TickRate)
	if err != nil || every < 1 {
		writeError(w, http.StatusBadRequest, "every must be a positive integer")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go readPump(conn, cancel)

	logger := s.log.With("strategy", strategy, "seed", opts.Seed, "remote", r.RemoteAddr)
	logger.Info("live jam started")

	frames := 0
	opts.ObserveEvery = every
	opts.Observer = func(snap economy.Snapshot, report economy.TickReport) error {
		if frames > 0 && s.cfg.FrameInterval > 0 {
			timer := time.NewTimer(s.cfg.FrameInterval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		frames++
		return writeFrame(conn, Message{Type: "snapshot", Payload: newSnapshotDTO(snap, report), Sender: sender})
	}

	res, err := autoplay.Run(ctx, s.cfg.Game, strategy, opts)
	switch {
	case autoplay.IsCancelled(err):
		logger.Info("live jam abandoned", "frames", frames)
		return
	case err != nil:
		logger.Warn("live jam failed", "err", err)
		_ = writeFrame(conn, Message{Type: "error", Payload: err.Error(), Sender: sender})
	default:
		logger.Info("live jam finished", "frames", frames, "submitted", res.Submitted)
		if err := writeFrame(conn, Message{Type: "done", Payload: newRunDTO(res), Sender: sender}); err != nil {
			return
		}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump drains client frames so control messages are processed.
// The live stream ignores client data and cancels the run once the
// connection fails or closes.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding %s frame: %w", msg.Type, err)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	w, err := conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
