package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
)

// InsertStatOperation appends a record to the download ledger and returns the
// id assigned by storage. Subscribers receive the new snapshot.
func (r *Repository) InsertStatOperation(ctx context.Context, op DownloadStatOperation) (int64, error) {
	var mangaID sql.NullInt64
	if op.MangaID != nil {
		mangaID = sql.NullInt64{Int64: *op.MangaID, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO download_stat (manga_id, date, size, units) VALUES (?, ?, ?, ?) RETURNING id`,
		mangaID, op.Date, op.Size, op.Units,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert stat operation: %w", err)
	}

	r.publishLedger(ctx)
	return id, nil
}

// GetStatOperations returns the whole ledger in chronological order.
func (r *Repository) GetStatOperations(ctx context.Context) ([]DownloadStatOperation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, manga_id, date, size, units FROM download_stat ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stat operations: %w", err)
	}
	defer rows.Close()

	var ops []DownloadStatOperation
	for rows.Next() {
		var (
			op      DownloadStatOperation
			mangaID sql.NullInt64
		)
		if err := rows.Scan(&op.ID, &mangaID, &op.Date, &op.Size, &op.Units); err != nil {
			return nil, err
		}
		if mangaID.Valid {
			id := mangaID.Int64
			op.MangaID = &id
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// SubscribeStatOperations streams full ledger snapshots: the current one
// immediately, then one after every change. Slow readers only ever see the
// latest snapshot. The channel is closed when ctx is done.
func (r *Repository) SubscribeStatOperations(ctx context.Context) (<-chan []DownloadStatOperation, error) {
	r.ledger.publish.Lock()
	defer r.ledger.publish.Unlock()

	snapshot, err := r.GetStatOperations(ctx)
	if err != nil {
		return nil, err
	}

	ch, id := r.ledger.add()
	r.ledger.offer(id, snapshot)

	go func() {
		<-ctx.Done()
		r.ledger.remove(id)
	}()
	return ch, nil
}

// publishLedger reads and broadcasts under one lock, so subscribers never
// receive an older snapshot after a newer one.
func (r *Repository) publishLedger(ctx context.Context) {
	r.ledger.publish.Lock()
	defer r.ledger.publish.Unlock()

	if !r.ledger.active() {
		return
	}
	snapshot, err := r.GetStatOperations(context.WithoutCancel(ctx))
	if err != nil {
		slog.Warn("Failed to refresh ledger subscribers", "error", err)
		return
	}
	r.ledger.broadcast(snapshot)
}

type ledgerHub struct {
	// publish orders snapshot reads with their delivery
	publish sync.Mutex

	mu     sync.Mutex
	nextID int
	subs   map[int]chan []DownloadStatOperation
}

func newLedgerHub() *ledgerHub {
	return &ledgerHub{subs: make(map[int]chan []DownloadStatOperation)}
}

func (h *ledgerHub) add() (chan []DownloadStatOperation, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	ch := make(chan []DownloadStatOperation, 1)
	h.subs[h.nextID] = ch
	return ch, h.nextID
}

func (h *ledgerHub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *ledgerHub) active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs) > 0
}

func (h *ledgerHub) broadcast(snapshot []DownloadStatOperation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		offerLatest(ch, snapshot)
	}
}

func (h *ledgerHub) offer(id int, snapshot []DownloadStatOperation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		offerLatest(ch, snapshot)
	}
}

func (h *ledgerHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// offerLatest replaces any unread snapshot so the send never blocks.
func offerLatest(ch chan []DownloadStatOperation, snapshot []DownloadStatOperation) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snapshot:
	default:
	}
}
