package store_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/setbook/sheetstore/store"
)

// fakeRemote is an in-memory store.Remote with per-method call counting
// and error injection. It models the remote row layout faithfully: ragged
// rows, 1-based A1 addressing, physical row shifts on delete.
type fakeRemote struct {
	mu          sync.Mutex
	docs        map[string]*fakeDoc
	byTitle     map[string]string
	perms       map[string][]store.Grant
	nextDocID   int
	nextSheetID int64
	nextPermID  int
	calls       map[string]int

	findErr     error
	createErr   error
	readErr     error
	appendErr   error
	updateErr   error
	sheetsErr   error
	addSheetErr error
	deleteErr   error
	permErr     error
}

type fakeDoc struct {
	title string
	order []string
	tabs  map[string]*fakeSheet
}

type fakeSheet struct {
	id   int64
	rows [][]string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		docs:    make(map[string]*fakeDoc),
		byTitle: make(map[string]string),
		perms:   make(map[string][]store.Grant),
		calls:   make(map[string]int),
	}
}

func (f *fakeRemote) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// seedDoc creates a spreadsheet outside the store's bootstrap path, for
// tests that start from a pre-existing document.
func (f *fakeRemote) seedDoc(title string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.newDoc(title)
}

// seedSheet adds a sheet with the given rows to a seeded spreadsheet.
func (f *fakeRemote) seedSheet(docID, name string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.docs[docID]
	f.nextSheetID++
	doc.order = append(doc.order, name)
	doc.tabs[name] = &fakeSheet{id: f.nextSheetID, rows: rows}
}

// sheetRows returns a copy of a sheet's raw rows for assertions.
func (f *fakeRemote) sheetRows(docID, name string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	tab, ok := f.docs[docID].tabs[name]
	if !ok {
		return nil
	}
	rows := make([][]string, len(tab.rows))
	for i, r := range tab.rows {
		rows[i] = append([]string(nil), r...)
	}
	return rows
}

func (f *fakeRemote) newDoc(title string) string {
	f.nextDocID++
	id := fmt.Sprintf("doc-%d", f.nextDocID)
	f.docs[id] = &fakeDoc{title: title, tabs: make(map[string]*fakeSheet)}
	f.byTitle[title] = id
	f.perms[id] = []store.Grant{{ID: "perm-owner", Email: "owner@example.com", Role: "owner"}}
	return id
}

func (f *fakeRemote) doc(id string) (*fakeDoc, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: no access to %s", store.ErrPermissionDenied, id)
	}
	return doc, nil
}

// parseRange splits an A1 reference into the sheet title and, unless it is
// a full-column span, the 0-based start column and 1-based row.
func parseRange(rng string) (title string, full bool, startCol, row int) {
	title, ref, _ := strings.Cut(rng, "!")
	title = strings.Trim(title, "'")
	if ref == "A:ZZ" {
		return title, true, 0, 0
	}
	start, _, _ := strings.Cut(ref, ":")
	i := 0
	for i < len(start) && start[i] >= 'A' && start[i] <= 'Z' {
		startCol = startCol*26 + int(start[i]-'A'+1)
		i++
	}
	startCol--
	row, _ = strconv.Atoi(start[i:])
	return title, false, startCol, row
}

func (f *fakeRemote) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ReadRange"]++
	if f.readErr != nil {
		return nil, f.readErr
	}
	doc, err := f.doc(spreadsheetID)
	if err != nil {
		return nil, err
	}
	title, full, startCol, row := parseRange(rng)
	tab, ok := doc.tabs[title]
	if !ok {
		return nil, nil
	}
	if full {
		rows := make([][]string, len(tab.rows))
		for i, r := range tab.rows {
			rows[i] = append([]string(nil), r...)
		}
		return rows, nil
	}
	if row > len(tab.rows) {
		return nil, nil
	}
	cells := tab.rows[row-1]
	if startCol >= len(cells) {
		return nil, nil
	}
	return [][]string{append([]string(nil), cells[startCol:]...)}, nil
}

func (f *fakeRemote) AppendRows(ctx context.Context, spreadsheetID, rng string, rows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["AppendRows"]++
	if f.appendErr != nil {
		return f.appendErr
	}
	doc, err := f.doc(spreadsheetID)
	if err != nil {
		return err
	}
	title, _, _, _ := parseRange(rng)
	tab, ok := doc.tabs[title]
	if !ok {
		return fmt.Errorf("fake: append to missing sheet %q", title)
	}
	for _, r := range rows {
		tab.rows = append(tab.rows, append([]string(nil), r...))
	}
	return nil
}

func (f *fakeRemote) UpdateRange(ctx context.Context, spreadsheetID, rng string, rows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateRange"]++
	if f.updateErr != nil {
		return f.updateErr
	}
	doc, err := f.doc(spreadsheetID)
	if err != nil {
		return err
	}
	title, _, startCol, row := parseRange(rng)
	tab, ok := doc.tabs[title]
	if !ok {
		return fmt.Errorf("fake: update of missing sheet %q", title)
	}
	for len(tab.rows) < row+len(rows)-1 {
		tab.rows = append(tab.rows, nil)
	}
	for i, r := range rows {
		cells := tab.rows[row-1+i]
		for len(cells) < startCol+len(r) {
			cells = append(cells, "")
		}
		copy(cells[startCol:], r)
		tab.rows[row-1+i] = cells
	}
	return nil
}

func (f *fakeRemote) Sheets(ctx context.Context, spreadsheetID string) ([]store.SheetInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Sheets"]++
	if f.sheetsErr != nil {
		return nil, f.sheetsErr
	}
	doc, err := f.doc(spreadsheetID)
	if err != nil {
		return nil, err
	}
	infos := make([]store.SheetInfo, 0, len(doc.order))
	for _, name := range doc.order {
		infos = append(infos, store.SheetInfo{ID: doc.tabs[name].id, Title: name})
	}
	return infos, nil
}

func (f *fakeRemote) AddSheet(ctx context.Context, spreadsheetID, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["AddSheet"]++
	if f.addSheetErr != nil {
		return f.addSheetErr
	}
	doc, err := f.doc(spreadsheetID)
	if err != nil {
		return err
	}
	f.nextSheetID++
	doc.order = append(doc.order, title)
	doc.tabs[title] = &fakeSheet{id: f.nextSheetID}
	return nil
}

func (f *fakeRemote) DeleteRows(ctx context.Context, spreadsheetID string, sheetID, start, end int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteRows"]++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	doc, err := f.doc(spreadsheetID)
	if err != nil {
		return err
	}
	for _, tab := range doc.tabs {
		if tab.id != sheetID {
			continue
		}
		if start < 0 || end > int64(len(tab.rows)) {
			return fmt.Errorf("fake: row interval [%d,%d) out of bounds", start, end)
		}
		tab.rows = append(tab.rows[:start], tab.rows[end:]...)
		return nil
	}
	return fmt.Errorf("fake: no sheet with id %d", sheetID)
}

func (f *fakeRemote) FindSpreadsheet(ctx context.Context, title string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["FindSpreadsheet"]++
	if f.findErr != nil {
		return "", f.findErr
	}
	return f.byTitle[title], nil
}

func (f *fakeRemote) CreateSpreadsheet(ctx context.Context, title string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateSpreadsheet"]++
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.newDoc(title), nil
}

func (f *fakeRemote) CreatePermission(ctx context.Context, spreadsheetID, email, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreatePermission"]++
	if f.permErr != nil {
		return f.permErr
	}
	if _, err := f.doc(spreadsheetID); err != nil {
		return err
	}
	f.nextPermID++
	f.perms[spreadsheetID] = append(f.perms[spreadsheetID], store.Grant{
		ID:    fmt.Sprintf("perm-%d", f.nextPermID),
		Email: email,
		Role:  role,
	})
	return nil
}

func (f *fakeRemote) ListPermissions(ctx context.Context, spreadsheetID string) ([]store.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListPermissions"]++
	if f.permErr != nil {
		return nil, f.permErr
	}
	if _, err := f.doc(spreadsheetID); err != nil {
		return nil, err
	}
	return append([]store.Grant(nil), f.perms[spreadsheetID]...), nil
}

func (f *fakeRemote) DeletePermission(ctx context.Context, spreadsheetID, permissionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeletePermission"]++
	if f.permErr != nil {
		return f.permErr
	}
	if _, err := f.doc(spreadsheetID); err != nil {
		return err
	}
	kept := f.perms[spreadsheetID][:0]
	for _, g := range f.perms[spreadsheetID] {
		if g.ID != permissionID {
			kept = append(kept, g)
		}
	}
	f.perms[spreadsheetID] = kept
	return nil
}
