package tui

import (
	"errors"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/api/apitype"
)

type MockTriage struct {
	api.TriageService
	mock.Mock
}

func (s *MockTriage) CurrentItem() *apitype.Item {
	args := s.Called()
	return args.Get(0).(*apitype.Item)
}

func (s *MockTriage) Swipe(item *apitype.Item, action apitype.SwipeAction) {
	s.Called(item, action)
}

func (s *MockTriage) Undo() {
	s.Called()
}

func (s *MockTriage) ResetKeptItems() {
	s.Called()
}

func (s *MockTriage) LoadForSelection(selection apitype.Selection) {
	s.Called(selection)
}

func (s *MockTriage) DeletedItems() []*apitype.Item {
	args := s.Called()
	return args.Get(0).([]*apitype.Item)
}

func (s *MockTriage) ConfirmDelete(items []*apitype.Item, done func(success bool)) {
	s.Called(items, done)
	done(true)
}

func (s *MockTriage) FilteredItems() []*apitype.Item {
	args := s.Called()
	return args.Get(0).([]*apitype.Item)
}

func (s *MockTriage) Cursor() int {
	args := s.Called()
	return args.Int(0)
}

type StubImages struct {
	loaded []apitype.ItemId
}

func (s *StubImages) LoadImage(item *apitype.Item, width int, height int) (image.Image, error) {
	s.loaded = append(s.loaded, item.Id())
	if item.Kind() == apitype.VIDEO {
		return nil, errors.New("no preview for videos")
	}
	return imaging.New(2, 2, color.White), nil
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

var item = apitype.NewItem("a", "/photos", "a.jpg", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), apitype.IMAGE)

func TestModel_Keys(t *testing.T) {
	t.Run("Swipe current item", func(t *testing.T) {
		a := assert.New(t)
		triage := &MockTriage{}
		triage.On("CurrentItem").Return(item)
		triage.On("Swipe", item, apitype.KEEP).Once()
		triage.On("Swipe", item, apitype.DELETE).Once()
		triage.On("Swipe", item, apitype.PENDING).Once()
		triage.On("Undo").Once()
		model := NewModel(Options{Triage: triage})

		model.Update(tea.KeyMsg{Type: tea.KeyRight})
		model.Update(runes("h"))
		model.Update(tea.KeyMsg{Type: tea.KeyUp})
		model.Update(runes("u"))

		triage.AssertExpectations(t)
		a.Equal("pending: a.jpg", model.status)
	})
	t.Run("Nothing to swipe", func(t *testing.T) {
		triage := &MockTriage{}
		triage.On("CurrentItem").Return((*apitype.Item)(nil))
		model := NewModel(Options{Triage: triage})

		model.Update(tea.KeyMsg{Type: tea.KeyRight})

		triage.AssertNotCalled(t, "Swipe", mock.Anything, mock.Anything)
	})
	t.Run("Reset needs a second press", func(t *testing.T) {
		triage := &MockTriage{}
		triage.On("ResetKeptItems").Once()
		model := NewModel(Options{Triage: triage})

		model.Update(runes("K"))
		triage.AssertNotCalled(t, "ResetKeptItems")

		model.Update(runes("K"))
		triage.AssertExpectations(t)
	})
	t.Run("Other key disarms reset", func(t *testing.T) {
		triage := &MockTriage{}
		model := NewModel(Options{Triage: triage})

		model.Update(runes("K"))
		model.Update(runes("?"))
		model.Update(runes("P"))

		triage.AssertNotCalled(t, "ResetKeptItems")
	})
	t.Run("Confirm deletion", func(t *testing.T) {
		a := assert.New(t)
		triage := &MockTriage{}
		triage.On("DeletedItems").Return([]*apitype.Item{item})
		triage.On("ConfirmDelete", []*apitype.Item{item}, mock.Anything).Once()
		model := NewModel(Options{Triage: triage})

		model.Update(runes("x"))

		triage.AssertExpectations(t)
		a.Equal("Deleted 1 items", model.status)
		a.False(model.deleting)
	})
	t.Run("Quit", func(t *testing.T) {
		a := assert.New(t)
		model := NewModel(Options{Triage: &MockTriage{}})

		_, cmd := model.Update(runes("q"))

		a.NotNil(cmd)
	})
}

func TestModel_NextSelection(t *testing.T) {
	triage := &MockTriage{}
	collection := apitype.NewCollection("dir:2024", "2024", apitype.USER)
	march := apitype.PeriodKey{Year: 2024, Month: time.March}
	model := NewModel(Options{Triage: triage})
	model.onLibraryUpdated(&api.LibraryCommand{
		Collections: []*apitype.CollectionInfo{
			{Collection: collection, Count: 3},
			{Collection: apitype.NewCollection("smart:videos", "Videos", apitype.SMART), Count: 0},
		},
		Months: []apitype.PeriodCount{{Period: march, Count: 3}},
	})
	triage.On("LoadForSelection", apitype.AlbumSelection(collection)).Once()
	triage.On("LoadForSelection", apitype.MonthSelection(march)).Once()
	triage.On("LoadForSelection", apitype.AllItems()).Once()

	model.Update(runes("s"))
	model.Update(runes("s"))
	model.Update(runes("s"))

	triage.AssertExpectations(t)
}

func TestModel_DispatchAndSnapshots(t *testing.T) {
	a := assert.New(t)
	model := NewModel(Options{Triage: &MockTriage{}})

	ran := false
	model.Update(dispatchMsg{fn: func() { ran = true }})
	a.True(ran)

	model.onTriageUpdated(&api.UpdateTriageCommand{Title: "All items", Current: item, Index: 1, Total: 3, CandidateTotal: 5})
	model.onOutcomeSetsUpdated(&api.OutcomeSetsCommand{KeptCount: 1, Deleted: []*apitype.Item{item}})
	model.onError(&api.ErrorCommand{Message: "Could not save\ndisk full"})

	view := model.View()
	a.Contains(view, "All items")
	a.Contains(view, "1 / 3 (5)")
	a.Contains(view, "a.jpg")
	a.Contains(view, "kept 1  pending 0  deleted 1")
	a.Contains(view, "Could not save: disk full")
}

func TestModel_ProgressClearsWhenDone(t *testing.T) {
	a := assert.New(t)
	model := NewModel(Options{Triage: &MockTriage{}})

	model.onProgress(&api.UpdateProgressCommand{Name: "scan", Current: 1, Total: 2})
	a.NotNil(model.progress)

	model.onProgress(&api.UpdateProgressCommand{Name: "scan", Current: 2, Total: 2})
	a.Nil(model.progress)
}

func TestRenderPreview(t *testing.T) {
	a := assert.New(t)
	img := imaging.New(3, 4, color.NRGBA{R: 255, A: 255})

	view := renderPreview(img)

	lines := strings.Split(view, "\n")
	a.Len(lines, 2)
	a.Equal(3, strings.Count(lines[0], upperHalfBlock))
	a.Equal("", renderPreview(nil))
}

func TestProgramDispatcher_WithoutProgram(t *testing.T) {
	a := assert.New(t)
	a.NotPanics(func() {
		NewProgramDispatcher().Dispatch(func() {})
	})
}

func TestKeyMap_Help(t *testing.T) {
	a := assert.New(t)
	keys := defaultKeyMap()

	a.True(key.Matches(tea.KeyMsg{Type: tea.KeyLeft}, keys.Delete))
	a.True(key.Matches(runes("l"), keys.Keep))
	a.Len(keys.FullHelp(), 3)
}

func TestModel_Preview(t *testing.T) {
	video := apitype.NewItem("v", "/photos", "v.mp4", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), apitype.VIDEO)
	other := apitype.NewItem("b", "/photos", "b.jpg", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), apitype.IMAGE)

	t.Run("Current item and the next ones are loaded", func(t *testing.T) {
		a := assert.New(t)
		triage := &MockTriage{}
		triage.On("FilteredItems").Return([]*apitype.Item{item, video, other})
		triage.On("Cursor").Return(0)
		images := &StubImages{}
		model := NewModel(Options{Triage: triage, Images: images})
		model.onTriageUpdated(&api.UpdateTriageCommand{Title: "All", Current: item, Index: 1, Total: 3})

		cmd := model.previewCmd()
		if a.NotNil(cmd) {
			model.Update(cmd())
		}

		a.Equal([]apitype.ItemId{"a", "v", "b"}, images.loaded)
		a.Equal(apitype.ItemId("a"), model.previewId)
		a.NotEmpty(model.preview)
		a.Nil(model.previewCmd())
	})
	t.Run("Failed preview is shown as text", func(t *testing.T) {
		a := assert.New(t)
		triage := &MockTriage{}
		triage.On("FilteredItems").Return([]*apitype.Item{video})
		triage.On("Cursor").Return(0)
		model := NewModel(Options{Triage: triage, Images: &StubImages{}})
		model.onTriageUpdated(&api.UpdateTriageCommand{Title: "All", Current: video, Index: 1, Total: 1})

		model.Update(model.previewCmd()())

		a.Contains(model.preview, "no preview for videos")
	})
	t.Run("Stale preview is ignored", func(t *testing.T) {
		a := assert.New(t)
		model := NewModel(Options{Triage: &MockTriage{}})
		model.previewWants = "b"

		model.Update(previewMsg{id: "a", view: "old"})

		a.Empty(model.preview)
	})
}
