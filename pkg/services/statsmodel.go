package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/sources"
	"github.com/kerbaras/mangastats/pkg/stats"
	"github.com/kerbaras/mangastats/pkg/storage"
)

// StatsRepository is the read side the statistics screen needs
type StatsRepository interface {
	GetManga(ctx context.Context, id int64) (*data.Manga, error)
	GetCategories(ctx context.Context) ([]data.Category, error)
	GetLibraryManga(ctx context.Context) ([]data.LibraryManga, error)
	GetStatOperations(ctx context.Context) ([]data.DownloadStatOperation, error)
	SubscribeStatOperations(ctx context.Context) (<-chan []data.DownloadStatOperation, error)
}

// Downloads inspects and deletes manga folders
type Downloads interface {
	FindMangaDir(manga data.Manga, source sources.Source) (string, bool)
	DownloadCount(manga data.Manga, source sources.Source) int
	DeleteManga(ctx context.Context, manga data.Manga, source sources.Source) (bool, error)
}

// StatsModel owns the statistics screen state. The state is an immutable
// stats.State behind an atomic pointer; every mutation is a compare-and-swap
// of a fresh copy, so readers never observe a partial update.
type StatsModel struct {
	state atomic.Pointer[stats.State]
	tab   atomic.Int32

	repo      StatsRepository
	downloads Downloads
	sources   *sources.Manager
	scanner   *storage.Scanner
	prefs     statsPreferences
	Labels    stats.Labeler

	// mu guards the ledger fold bookkeeping shared by Watch and deletions
	mu      sync.Mutex
	seen    map[int64]struct{}
	pending map[int64]int

	deletes sync.WaitGroup
	changes chan struct{}
	errs    chan error
}

func NewStatsModel(repo StatsRepository, downloads Downloads, srcs *sources.Manager, scanner *storage.Scanner, prefs *data.PreferenceStore) *StatsModel {
	m := &StatsModel{
		repo:      repo,
		downloads: downloads,
		sources:   srcs,
		scanner:   scanner,
		prefs:     newStatsPreferences(prefs),
		seen:      make(map[int64]struct{}),
		pending:   make(map[int64]int),
		changes:   make(chan struct{}, 1),
		errs:      make(chan error, 16),
	}
	initial := m.prefs.apply(stats.NewState())
	m.state.Store(&initial)
	m.tab.Store(int32(m.prefs.tab.Get()))
	return m
}

// State returns the current snapshot
func (m *StatsModel) State() stats.State {
	return *m.state.Load()
}

// Changes signals after every state replacement. Signals coalesce.
func (m *StatsModel) Changes() <-chan struct{} {
	return m.changes
}

// Errors reports failures of background deletions
func (m *StatsModel) Errors() <-chan error {
	return m.errs
}

func (m *StatsModel) update(f func(stats.State) stats.State) stats.State {
	for {
		old := m.state.Load()
		next := f(*old)
		if m.state.CompareAndSwap(old, &next) {
			m.notify()
			return next
		}
	}
}

func (m *StatsModel) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *StatsModel) report(err error) {
	slog.Error("download statistics", "error", err)
	select {
	case m.errs <- err:
	default:
	}
}

// Load rebuilds every entry from the library, the ledger and the disk.
// Folder sizes are measured concurrently; the result replaces the state in
// one step.
func (m *StatsModel) Load(ctx context.Context) error {
	categories, err := m.repo.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	library, err := m.repo.GetLibraryManga(ctx)
	if err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}
	ops, err := m.repo.GetStatOperations(ctx)
	if err != nil {
		return fmt.Errorf("failed to load download statistics: %w", err)
	}

	items, err := m.buildEntries(ctx, library, categoryIndex(categories), ops)
	if err != nil {
		return err
	}

	// records written before the scan finished are already measured on disk
	latest, err := m.repo.GetStatOperations(ctx)
	if err != nil {
		return fmt.Errorf("failed to load download statistics: %w", err)
	}
	items = append(items, m.lateEntries(ctx, items, ops, latest)...)

	m.mu.Lock()
	m.seen = make(map[int64]struct{}, len(latest))
	for _, op := range latest {
		m.seen[op.ID] = struct{}{}
	}
	m.pending = make(map[int64]int)
	m.mu.Unlock()

	m.update(func(s stats.State) stats.State {
		s = m.prefs.apply(s)
		s.Items = items
		s.Operations = latest
		s.Anchor = nil
		s.Loading = false
		return s
	})
	slog.Debug("download statistics loaded", "entries", len(items), "operations", len(latest))
	return nil
}

// buildEntries keeps library manga that have downloads or appear in the
// ledger. A manga reported as downloaded whose folder cannot be found is
// dropped.
func (m *StatsModel) buildEntries(ctx context.Context, library []data.LibraryManga, categories map[int64]data.Category, ops []data.DownloadStatOperation) ([]stats.Entry, error) {
	referenced := make(map[int64]struct{})
	for _, op := range ops {
		if op.MangaID != nil {
			referenced[*op.MangaID] = struct{}{}
		}
	}

	type folder struct {
		dir      string
		chapters int
	}
	folders := make(map[int64]folder)
	var entries []stats.Entry
	var paths []string
	var pathOwners []int64

	for _, lib := range library {
		source := m.sources.GetOrStub(lib.Manga.SourceID)
		f, known := folders[lib.ID()]
		if !known {
			if dir, ok := m.downloads.FindMangaDir(lib.Manga, source); ok {
				f = folder{dir: dir, chapters: m.downloads.DownloadCount(lib.Manga, source)}
				paths = append(paths, dir)
				pathOwners = append(pathOwners, lib.ID())
			}
			folders[lib.ID()] = f
		}

		if _, ok := referenced[lib.ID()]; f.chapters == 0 && !ok {
			continue
		}
		entries = append(entries, stats.Entry{
			Library:      lib,
			Source:       source,
			Category:     categoryFor(categories, lib.Category),
			ChapterCount: f.chapters,
		})
	}

	sizes, err := m.scanner.Sizes(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to measure downloads: %w", err)
	}
	bySize := make(map[int64]int64, len(sizes))
	for i, size := range sizes {
		bySize[pathOwners[i]] = size
	}
	for i := range entries {
		entries[i].FolderSize = bySize[entries[i].MangaID()]
	}
	return entries, nil
}

// lateEntries resolves manga whose first records arrived while the library
// was being measured.
func (m *StatsModel) lateEntries(ctx context.Context, items []stats.Entry, before, latest []data.DownloadStatOperation) []stats.Entry {
	if len(latest) == len(before) {
		return nil
	}
	known := make(map[int64]struct{}, len(items))
	for _, e := range items {
		known[e.MangaID()] = struct{}{}
	}
	loaded := make(map[int64]struct{}, len(before))
	for _, op := range before {
		loaded[op.ID] = struct{}{}
	}

	var added []stats.Entry
	for _, op := range latest {
		if _, ok := loaded[op.ID]; ok || op.MangaID == nil {
			continue
		}
		if _, ok := known[*op.MangaID]; ok {
			continue
		}
		known[*op.MangaID] = struct{}{}
		added = append(added, m.resolveEntries(ctx, *op.MangaID)...)
	}
	return added
}

func categoryIndex(categories []data.Category) map[int64]data.Category {
	index := make(map[int64]data.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index
}

func categoryFor(index map[int64]data.Category, id int64) data.Category {
	if c, ok := index[id]; ok {
		return c
	}
	return data.Category{ID: id}
}

// Watch follows the ledger until ctx is done, folding records it has not
// seen yet into the per-manga totals.
func (m *StatsModel) Watch(ctx context.Context) error {
	snapshots, err := m.repo.SubscribeStatOperations(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to download statistics: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}
			m.Apply(ctx, snapshot)
		}
	}
}

// Apply folds one ledger snapshot into the state. A snapshot missing a
// record already folded is older than the state and is ignored.
func (m *StatsModel) Apply(ctx context.Context, snapshot []data.DownloadStatOperation) {
	fresh, current := m.unseen(snapshot)
	if !current {
		slog.Debug("ignoring stale ledger snapshot", "operations", len(snapshot))
		return
	}

	known := make(map[int64]struct{})
	for _, e := range m.State().Items {
		known[e.MangaID()] = struct{}{}
	}
	var added []stats.Entry
	resolved := make(map[int64]struct{})
	for _, op := range fresh {
		if op.MangaID == nil {
			continue
		}
		id := *op.MangaID
		if _, ok := known[id]; ok {
			continue
		}
		if _, ok := resolved[id]; ok {
			continue
		}
		resolved[id] = struct{}{}
		added = append(added, m.resolveEntries(ctx, id)...)
	}

	deltas := make(map[int64]stats.Entry)
	for _, op := range fresh {
		if op.MangaID == nil {
			continue
		}
		if _, ok := resolved[*op.MangaID]; ok {
			// measured from disk already
			continue
		}
		d := deltas[*op.MangaID]
		d.FolderSize += op.Size
		d.ChapterCount += int(op.Units)
		deltas[*op.MangaID] = d
	}

	m.update(func(s stats.State) stats.State {
		s.Operations = snapshot
		if len(deltas) > 0 {
			items := make([]stats.Entry, len(s.Items))
			for i, e := range s.Items {
				if d, ok := deltas[e.MangaID()]; ok {
					e.FolderSize = max(e.FolderSize+d.FolderSize, 0)
					e.ChapterCount = max(e.ChapterCount+d.ChapterCount, 0)
				}
				items[i] = e
			}
			s.Items = items
		}
		if len(added) > 0 {
			s.Items = append(s.Items[:len(s.Items):len(s.Items)], added...)
		}
		return s
	})
}

// unseen returns the records of snapshot not folded yet, minus the
// deletions this model already applied optimistically. It reports false,
// marking nothing, when snapshot lacks a record that was already seen.
func (m *StatsModel) unseen(snapshot []data.DownloadStatOperation) ([]data.DownloadStatOperation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make(map[int64]struct{}, len(snapshot))
	for _, op := range snapshot {
		ids[op.ID] = struct{}{}
	}
	for id := range m.seen {
		if _, ok := ids[id]; !ok {
			return nil, false
		}
	}

	var fresh []data.DownloadStatOperation
	for _, op := range snapshot {
		if _, ok := m.seen[op.ID]; ok {
			continue
		}
		m.seen[op.ID] = struct{}{}
		if op.MangaID != nil && op.Size <= 0 && m.pending[*op.MangaID] > 0 {
			m.release(*op.MangaID)
			continue
		}
		fresh = append(fresh, op)
	}
	return fresh, true
}

func (m *StatsModel) release(mangaID int64) {
	if m.pending[mangaID] <= 1 {
		delete(m.pending, mangaID)
		return
	}
	m.pending[mangaID]--
}

// resolveEntries builds the rows of a manga that entered the ledger after
// Load, measured from disk.
func (m *StatsModel) resolveEntries(ctx context.Context, mangaID int64) []stats.Entry {
	library, err := m.repo.GetLibraryManga(ctx)
	if err != nil {
		slog.Warn("failed to resolve manga", "manga", mangaID, "error", err)
		return nil
	}
	categories, err := m.repo.GetCategories(ctx)
	if err != nil {
		slog.Warn("failed to resolve categories", "manga", mangaID, "error", err)
		return nil
	}
	index := categoryIndex(categories)

	var entries []stats.Entry
	for _, lib := range library {
		if lib.ID() != mangaID {
			continue
		}
		source := m.sources.GetOrStub(lib.Manga.SourceID)
		e := stats.Entry{
			Library:  lib,
			Source:   source,
			Category: categoryFor(index, lib.Category),
		}
		if dir, ok := m.downloads.FindMangaDir(lib.Manga, source); ok {
			e.FolderSize = storage.FolderSize(ctx, dir)
			e.ChapterCount = m.downloads.DownloadCount(lib.Manga, source)
		}
		entries = append(entries, e)
	}
	return entries
}

func (m *StatsModel) Tab() Tab {
	return Tab(m.tab.Load())
}

func (m *StatsModel) SetTab(tab Tab) {
	m.tab.Store(int32(tab))
	if err := m.prefs.tab.Set(int(tab)); err != nil {
		slog.Warn("failed to save tab", "error", err)
	}
	m.notify()
}

// Sort applies a sort mode; choosing the active mode again flips the direction
func (m *StatsModel) Sort(mode stats.SortMode) {
	s := m.update(func(s stats.State) stats.State { return s.WithSort(mode) })
	m.persist(m.prefs.sortMode.Set(s.SortMode), m.prefs.descending.Set(s.Descending))
}

func (m *StatsModel) GroupBy(mode stats.GroupMode) {
	m.update(func(s stats.State) stats.State {
		s.GroupMode = mode
		return s
	})
	m.persist(m.prefs.groupMode.Set(mode))
}

// Search filters by query; an empty query clears the filter
func (m *StatsModel) Search(query string) {
	m.update(func(s stats.State) stats.State {
		s.SearchQuery = query
		return s
	})
	if query == "" {
		m.persist(m.prefs.searchQuery.Delete())
		return
	}
	m.persist(m.prefs.searchQuery.Set(query))
}

func (m *StatsModel) ToggleShowNotDownloaded() {
	show, err := data.Toggle(m.prefs.showNotDownloaded)
	m.persist(err)
	m.update(func(s stats.State) stats.State {
		s.ShowNotDownloaded = show
		return s
	})
}

func (m *StatsModel) persist(errs ...error) {
	if err := errors.Join(errs...); err != nil {
		slog.Warn("failed to save preference", "error", err)
	}
}

func (m *StatsModel) ToggleSelection(key stats.EntryKey) {
	m.update(func(s stats.State) stats.State { return s.ToggleSelection(key) })
}

func (m *StatsModel) RangeSelection(key stats.EntryKey) {
	m.update(func(s stats.State) stats.State { return s.RangeSelection(key) })
}

func (m *StatsModel) SetAllSelection(selected bool) {
	m.update(func(s stats.State) stats.State { return s.SetAllSelection(selected) })
}

func (m *StatsModel) InvertSelection() {
	m.update(stats.State.InvertSelection)
}

func (m *StatsModel) ToggleGroupSelection(members []stats.Entry) {
	m.update(func(s stats.State) stats.State { return s.ToggleGroupSelection(members) })
}

func (m *StatsModel) ToggleExpanded(key stats.EntryKey) {
	m.update(func(s stats.State) stats.State { return s.ToggleExpanded(key) })
}

func (m *StatsModel) ShowDialog(d stats.Dialog) {
	m.update(func(s stats.State) stats.State { return s.WithDialog(d) })
}

func (m *StatsModel) DismissDialog() {
	m.ShowDialog(nil)
}

func (m *StatsModel) OpenSettings() {
	m.ShowDialog(stats.SettingsDialog{})
}

// ShowDeleteDialog asks to confirm deleting entries; with none given the
// current selection is used
func (m *StatsModel) ShowDeleteDialog(entries ...stats.Entry) {
	m.update(func(s stats.State) stats.State {
		if len(entries) == 0 {
			entries = s.Selected()
		}
		if len(entries) == 0 {
			return s
		}
		return s.WithDialog(stats.DeleteDialog{Entries: entries})
	})
}

// ConfirmDelete deletes the entries of an open delete dialog
func (m *StatsModel) ConfirmDelete(ctx context.Context) {
	d, ok := m.State().Dialog.(stats.DeleteDialog)
	if !ok {
		return
	}
	m.DeleteEntries(ctx, d.Entries)
}

// DeleteEntries zeroes the entries right away and removes their downloads in
// the background. The removal outlives ctx cancellation; failures are
// reported on Errors.
func (m *StatsModel) DeleteEntries(ctx context.Context, entries []stats.Entry) {
	entries = stats.Unique(entries)
	if len(entries) == 0 {
		return
	}

	ids := make(map[int64]struct{}, len(entries))
	m.mu.Lock()
	for _, e := range entries {
		ids[e.MangaID()] = struct{}{}
		m.pending[e.MangaID()]++
	}
	m.mu.Unlock()

	m.update(func(s stats.State) stats.State {
		return s.MarkDeleted(ids).WithDialog(nil)
	})

	detached := context.WithoutCancel(ctx)
	m.deletes.Add(1)
	go func() {
		defer m.deletes.Done()
		for _, e := range entries {
			recorded, err := m.downloads.DeleteManga(detached, e.Library.Manga, e.Source)
			if err != nil {
				m.report(err)
			}
			if !recorded {
				m.mu.Lock()
				m.release(e.MangaID())
				m.mu.Unlock()
			}
		}
	}()
}

// Wait blocks until every background deletion has finished
func (m *StatsModel) Wait() {
	m.deletes.Wait()
}

// Series is the storage graph of the whole library
func (m *StatsModel) Series(mode stats.GraphGroupMode) []stats.GraphPoint {
	s := m.State()
	return stats.BuildSeries(s.Operations, s.TotalSize(), mode, m.Labels)
}

// EntrySeries is the storage graph of one manga
func (m *StatsModel) EntrySeries(e stats.Entry, mode stats.GraphGroupMode) []stats.GraphPoint {
	s := m.State()
	return stats.BuildSeries(s.OperationsFor(e.MangaID()), e.FolderSize, mode, m.Labels)
}

// FindManga resolves the manga a ledger record points at. A nil id or a
// manga removed since returns nil.
func (m *StatsModel) FindManga(ctx context.Context, id *int64) (*data.Manga, error) {
	if id == nil {
		return nil, nil
	}
	for _, e := range m.State().Items {
		if e.MangaID() == *id {
			manga := e.Library.Manga
			return &manga, nil
		}
	}
	return m.repo.GetManga(ctx, *id)
}
