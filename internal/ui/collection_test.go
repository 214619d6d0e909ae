package ui

import (
	"strings"
	"testing"

	"clinicdash/internal/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedCollection(t *testing.T, src *fakeSource, opts Options) *CollectionView {
	t.Helper()
	c := NewCollectionView(src, opts)
	c.Focused = true
	feed(c, c.Init())
	return c
}

func TestCollectionView_InitFetchesOnce(t *testing.T) {
	src := newFakeSource(roster.KindDoctors, doctorsFixture()...)
	c := loadedCollection(t, src, Options{})

	assert.Equal(t, 1, src.listCalls)
	assert.True(t, c.Loaded)
	assert.Equal(t, 3, c.Len())
}

func TestCollectionView_RenderedCountMatchesCollection(t *testing.T) {
	for _, n := range []int{0, 1, 3, 12} {
		entities := make([]roster.Entity, n)
		for i := range entities {
			entities[i] = roster.Entity{ID: roster.NewID(), Name: "Dr. " + strings.Repeat("X", i+1)}
		}
		c := loadedCollection(t, newFakeSource(roster.KindDoctors, entities...), Options{})

		require.Equal(t, n, c.Len())
		require.Len(t, c.items, n)
		out := c.View()
		for _, e := range entities {
			assert.Contains(t, out, e.Name)
		}
		// Title plus one line per collapsed entry.
		assert.Equal(t, n+1, len(strings.Split(out, "\n")))
	}
}

func TestCollectionView_SingleDoctorScenario(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, roster.Entity{ID: "1", Name: "Dr. A"}), Options{})

	require.Equal(t, 1, c.Len())
	out := c.View()
	assert.Contains(t, out, "Doctors List")
	assert.Contains(t, out, "(1)")
	assert.Contains(t, out, "Dr. A")
}

func TestCollectionView_AddToEmpty(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors), Options{})

	e := c.Add("Dr. B")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Dr. B", c.Collection.At(0).Name)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, e.ID, c.Collection.At(0).ID)
	assert.Contains(t, c.View(), "Dr. B")
}

func TestCollectionView_AddKeepsExistingIDs(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, doctorsFixture()...), Options{})
	before := c.Collection.Items()

	c.Add("Dr. D")

	require.Equal(t, len(before)+1, c.Len())
	for i, e := range before {
		assert.Equal(t, e.ID, c.Collection.At(i).ID)
	}
}

func TestCollectionView_AddStoresNameAsGiven(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors), Options{})

	for i, name := range []string{"", "   ", "  Dr. B  "} {
		e := c.Add(name)
		require.Equal(t, i+1, c.Len(), "add %q", name)
		assert.NotEmpty(t, e.ID, "add %q", name)
		assert.Equal(t, name, c.Collection.At(i).Name)
	}
}

func TestCollectionView_Remove(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors,
		roster.Entity{ID: "1", Name: "Dr. A"},
		roster.Entity{ID: "2", Name: "Dr. B"},
	), Options{})

	require.True(t, c.Remove("1"))
	assert.Equal(t, []roster.Entity{{ID: "2", Name: "Dr. B"}}, c.Collection.Items())
	assert.NotContains(t, c.View(), "Dr. A")
}

func TestCollectionView_RemoveAbsentIsNoop(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, doctorsFixture()...), Options{})

	assert.False(t, c.Remove("42"))
	assert.Equal(t, 3, c.Len())
}

func TestCollectionView_RemoveClampsSelection(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, doctorsFixture()...), Options{})
	c.Selected = 2

	c.Remove("3")
	assert.Equal(t, 1, c.Selected)
	c.Remove("1")
	c.Remove("2")
	assert.Equal(t, 0, c.Selected)
	assert.Nil(t, c.SelectedItem())
}

func TestCollectionView_FetchFailureIsSilentByDefault(t *testing.T) {
	src := newFakeSource(roster.KindDoctors)
	src.listErr = errBoom
	c := loadedCollection(t, src, Options{})

	assert.ErrorIs(t, c.Err, errBoom)
	assert.False(t, c.Loaded)
	assert.Equal(t, 0, c.Len())
	assert.NotContains(t, c.View(), "boom")
}

func TestCollectionView_FetchFailureShownWhenEnabled(t *testing.T) {
	src := newFakeSource(roster.KindDoctors)
	src.listErr = errBoom
	c := loadedCollection(t, src, Options{ShowErrors: true})

	assert.Contains(t, c.View(), "boom")
}

func TestCollectionView_IgnoresForeignAndStaleLoads(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, doctorsFixture()...), Options{})

	c.Update(CollectionLoadedMsg{Kind: roster.KindPatients, Token: c.loadToken, Entities: nil})
	assert.Equal(t, 3, c.Len(), "message for the other list must be ignored")

	c.Update(CollectionLoadedMsg{Kind: roster.KindDoctors, Token: c.loadToken, Entities: nil})
	assert.Equal(t, 3, c.Len(), "a second delivery after load must be ignored")
}

func TestCollectionView_KeyNavigation(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, doctorsFixture()...), Options{})

	c.Update(keyMsg("j"))
	assert.Equal(t, 1, c.Selected)
	c.Update(keyMsg("down"))
	assert.Equal(t, 2, c.Selected)
	c.Update(keyMsg("j"))
	assert.Equal(t, 2, c.Selected, "j at bottom stays")
	c.Update(keyMsg("g"))
	assert.Equal(t, 0, c.Selected)
	c.Update(keyMsg("k"))
	assert.Equal(t, 0, c.Selected, "k at top stays")
	c.Update(keyMsg("G"))
	assert.Equal(t, 2, c.Selected)

	assert.Contains(t, c.View(), "● ")
}

func TestCollectionView_NavigationOnEmpty(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors), Options{})

	for _, k := range []string{"j", "k", "g", "G", "enter", "d"} {
		_, cmd := c.Update(keyMsg(k))
		assert.Nil(t, cmd, "key %q", k)
		assert.Equal(t, 0, c.Selected, "key %q", k)
	}
}

func TestCollectionView_DeleteKeyEmitsRemoveMsg(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, doctorsFixture()...), Options{})
	c.Update(keyMsg("j"))

	_, cmd := c.Update(keyMsg("d"))
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, RemoveItemMsg{Kind: roster.KindDoctors, ID: "2", Index: 1}, msgs[0])

	c.Update(msgs[0])
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, -1, c.Collection.Index("2"))
}

func duplicateIDs() []roster.Entity {
	return []roster.Entity{
		{ID: "1", Name: "Dr. First"},
		{ID: "1", Name: "Dr. Second"},
	}
}

func TestCollectionView_EnterExpandsSelectedRowWithSharedID(t *testing.T) {
	src := newFakeSource(roster.KindDoctors, duplicateIDs()...)
	src.expansions["1"] = roster.Expansion{Detail: &roster.DoctorDetail{Specialty: "Cardiology"}}
	c := loadedCollection(t, src, Options{})
	c.Update(keyMsg("j"))

	_, cmd := c.Update(keyMsg("enter"))
	feed(c, cmd)

	assert.Equal(t, StateCollapsed, c.items[0].State)
	assert.Equal(t, StateLoaded, c.items[1].State)
}

func TestCollectionView_DeleteRemovesSelectedRowWithSharedID(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, duplicateIDs()...), Options{})
	c.Update(keyMsg("j"))

	_, cmd := c.Update(keyMsg("d"))
	feed(c, cmd)

	assert.Equal(t, []roster.Entity{{ID: "1", Name: "Dr. First"}}, c.Collection.Items())
}

func TestCollectionView_RemoveMsgWithStaleIndexFallsBackToID(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, doctorsFixture()...), Options{})

	c.Update(RemoveItemMsg{Kind: roster.KindDoctors, ID: "3", Index: 0})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, -1, c.Collection.Index("3"))
	assert.Equal(t, 0, c.Collection.Index("1"))
}

func TestCollectionView_SelectedRowShowsDeleteMarker(t *testing.T) {
	c := loadedCollection(t, newFakeSource(roster.KindDoctors, doctorsFixture()...), Options{})
	c.Focused = true

	lines := strings.Split(c.View(), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[1], "Dr. A x"), "selected row: %q", lines[1])
	assert.False(t, strings.HasSuffix(lines[2], " x"), "other row: %q", lines[2])
}

func TestCollectionView_EnterExpandsSelected(t *testing.T) {
	src := newFakeSource(roster.KindDoctors, doctorsFixture()...)
	src.expansions["1"] = roster.Expansion{Detail: &roster.DoctorDetail{DOB: "1970-01-01", Specialty: "Cardiology", Address: "1 Main St"}}
	c := loadedCollection(t, src, Options{})

	_, cmd := c.Update(keyMsg("enter"))
	feed(c, cmd)

	assert.Equal(t, StateLoaded, c.Item("1").State)
	assert.Contains(t, c.View(), "Cardiology")
	assert.Equal(t, StateCollapsed, c.Item("2").State)
}

func TestCollectionView_DropsExpansionForRemovedEntry(t *testing.T) {
	src := newFakeSource(roster.KindDoctors, doctorsFixture()...)
	src.expansions["1"] = roster.Expansion{Detail: &roster.DoctorDetail{Specialty: "Cardiology"}}
	c := loadedCollection(t, src, Options{})

	cmd := c.Activate("1")
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)

	c.Remove("1")
	c.Update(msgs[0])

	assert.Nil(t, c.Item("1"))
	assert.NotContains(t, c.View(), "Cardiology")
}

func TestCollectionView_PatientRelationScenario(t *testing.T) {
	src := newFakeSource(roster.KindPatients, roster.Entity{ID: "5", Name: "Pat"})
	src.expansions["5"] = roster.Expansion{Related: []roster.Entity{{ID: "9", Name: "Dr. C"}}}
	c := loadedCollection(t, src, Options{})

	feed(c, c.Activate("5"))

	item := c.Item("5")
	require.NotNil(t, item)
	assert.Equal(t, []roster.Entity{{ID: "9", Name: "Dr. C"}}, item.Expansion.Related)
	out := c.View()
	assert.Contains(t, out, "Patients List")
	assert.Contains(t, out, "- Dr. C")
	assert.Equal(t, 1, strings.Count(out, "Dr. C"))
}

func TestCollectionView_ShowLoadingRendersSpinnerWhileFetching(t *testing.T) {
	c := NewCollectionView(newFakeSource(roster.KindDoctors, doctorsFixture()...), Options{ShowLoading: true})
	cmd := c.Init()

	assert.True(t, c.loading)
	before := c.View()
	feed(c, cmd)

	assert.False(t, c.loading)
	assert.NotEqual(t, before, c.View())
}
