package bank

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertIndexConsistent checks that every bucket holds exactly the IDs whose
// current label matches it, and that no empty bucket is left behind.
func assertIndexConsistent(t *testing.T, b *Bank) {
	t.Helper()

	wantTopic := map[string]map[int]struct{}{}
	wantDifficulty := map[string]map[int]struct{}{}
	for id, q := range b.questions {
		if wantTopic[q.Topic] == nil {
			wantTopic[q.Topic] = map[int]struct{}{}
		}
		wantTopic[q.Topic][id] = struct{}{}
		if wantDifficulty[q.Difficulty] == nil {
			wantDifficulty[q.Difficulty] = map[int]struct{}{}
		}
		wantDifficulty[q.Difficulty][id] = struct{}{}
	}

	require.Len(t, b.byTopic, len(wantTopic), "topic bucket count")
	for label, ids := range wantTopic {
		assert.Equal(t, ids, b.byTopic.members(label), "topic bucket %q", label)
	}
	require.Len(t, b.byDifficulty, len(wantDifficulty), "difficulty bucket count")
	for label, ids := range wantDifficulty {
		assert.Equal(t, ids, b.byDifficulty.members(label), "difficulty bucket %q", label)
	}
}

// members returns a copy of one bucket.
func (ix index) members(label string) map[int]struct{} {
	out := make(map[int]struct{}, len(ix[label]))
	for id := range ix[label] {
		out[id] = struct{}{}
	}
	return out
}

func ids(qs []Question) []int {
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func seeded() *Bank {
	b := New(WithRand(rand.New(rand.NewPCG(1, 2))))
	b.Add(Question{ID: 1, Text: "What is Big-O notation?", Topic: "Algorithms", Difficulty: "Easy"})
	b.Add(Question{ID: 2, Text: "Explain a binary search tree.", Topic: "Data Structures", Difficulty: "Medium"})
	b.Add(Question{ID: 3, Text: "Prove Dijkstra correct.", Topic: "Algorithms", Difficulty: "Hard"})
	b.Add(Question{ID: 4, Text: "What is a stack?", Topic: "Data Structures", Difficulty: "Easy"})
	b.Add(Question{ID: 5, Text: "Define amortized cost.", Topic: "Algorithms", Difficulty: "Easy"})
	return b
}

func TestBank_Add(t *testing.T) {
	b := New()
	b.Add(Question{ID: 7, Text: "A", Topic: "T1", Difficulty: "Easy"})

	got, err := b.Get(7)
	require.NoError(t, err)
	assert.Equal(t, Question{ID: 7, Text: "A", Topic: "T1", Difficulty: "Easy"}, got)
	assert.Equal(t, 1, b.Len())
	assertIndexConsistent(t, b)
}

func TestBank_AddExistingIDReindexes(t *testing.T) {
	b := New()
	b.Add(Question{ID: 1, Text: "A", Topic: "T1", Difficulty: "Easy"})
	b.Add(Question{ID: 1, Text: "B", Topic: "T2", Difficulty: "Hard"})

	got, err := b.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Text)
	assert.Empty(t, b.Search([]string{"T1"}, nil))
	assert.Equal(t, []int{1}, ids(b.Search([]string{"T2"}, nil)))
	assert.Equal(t, 1, b.Len())
	assertIndexConsistent(t, b)
}

func TestBank_Update(t *testing.T) {
	tests := []struct {
		name    string
		changes Changes
		want    Question
	}{
		{
			name:    "topic only",
			changes: Changes{Topic: "T2"},
			want:    Question{ID: 5, Text: "A", Topic: "T2", Difficulty: "Easy"},
		},
		{
			name:    "text only",
			changes: Changes{Text: "B"},
			want:    Question{ID: 5, Text: "B", Topic: "T1", Difficulty: "Easy"},
		},
		{
			name:    "difficulty only",
			changes: Changes{Difficulty: "Hard"},
			want:    Question{ID: 5, Text: "A", Topic: "T1", Difficulty: "Hard"},
		},
		{
			name:    "all fields",
			changes: Changes{Text: "B", Topic: "T2", Difficulty: "Hard"},
			want:    Question{ID: 5, Text: "B", Topic: "T2", Difficulty: "Hard"},
		},
		{
			name:    "same topic is a no-op for indexes",
			changes: Changes{Topic: "T1"},
			want:    Question{ID: 5, Text: "A", Topic: "T1", Difficulty: "Easy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.Add(Question{ID: 5, Text: "A", Topic: "T1", Difficulty: "Easy"})

			require.NoError(t, b.Update(5, tt.changes))

			got, err := b.Get(5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assertIndexConsistent(t, b)
		})
	}
}

func TestBank_UpdateMovesBucket(t *testing.T) {
	b := New()
	b.Add(Question{ID: 5, Text: "A", Topic: "T1", Difficulty: "Easy"})
	b.Add(Question{ID: 6, Text: "C", Topic: "T1", Difficulty: "Easy"})

	require.NoError(t, b.Update(5, Changes{Topic: "T2"}))

	assert.NotContains(t, b.byTopic.members("T1"), 5)
	assert.Contains(t, b.byTopic.members("T2"), 5)
	assert.Contains(t, b.byTopic.members("T1"), 6)
}

func TestBank_UpdateNotFound(t *testing.T) {
	b := seeded()
	before := b.All()

	err := b.Update(99, Changes{Text: "x"})

	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, b.All())
	assertIndexConsistent(t, b)
}

func TestBank_Delete(t *testing.T) {
	b := seeded()

	require.NoError(t, b.Delete(2))

	_, err := b.Get(2)
	assert.ErrorIs(t, err, ErrNotFound)
	for label := range b.byTopic {
		assert.NotContains(t, b.byTopic.members(label), 2)
	}
	for label := range b.byDifficulty {
		assert.NotContains(t, b.byDifficulty.members(label), 2)
	}
	assert.Equal(t, 4, b.Len())
	assertIndexConsistent(t, b)
}

func TestBank_DeleteLastInBucketPrunesIt(t *testing.T) {
	b := seeded()

	require.NoError(t, b.Delete(3))

	stats := b.Statistics()
	assert.NotContains(t, stats.ByDifficulty, "Hard")
	assertIndexConsistent(t, b)
}

func TestBank_DeleteNotFound(t *testing.T) {
	b := seeded()

	err := b.Delete(42)

	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 5, b.Len())
}

func TestBank_Search(t *testing.T) {
	tests := []struct {
		name         string
		topics       []string
		difficulties []string
		want         []int
	}{
		{name: "no filters returns all", want: []int{1, 2, 3, 4, 5}},
		{name: "topic and difficulty", topics: []string{"Algorithms"}, difficulties: []string{"Easy"}, want: []int{1, 5}},
		{name: "topic only", topics: []string{"Data Structures"}, want: []int{2, 4}},
		{name: "difficulty only", difficulties: []string{"Easy"}, want: []int{1, 4, 5}},
		{name: "union of topics", topics: []string{"Algorithms", "Data Structures"}, difficulties: []string{"Medium", "Hard"}, want: []int{2, 3}},
		{name: "unknown topic", topics: []string{"Networking"}, want: []int{}},
		{name: "unknown mixed with known", topics: []string{"Networking", "Data Structures"}, want: []int{2, 4}},
		{name: "labels are exact match", topics: []string{"algorithms"}, want: []int{}},
	}

	b := seeded()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Search(tt.topics, tt.difficulties)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestBank_SearchEmptyBank(t *testing.T) {
	b := New()

	assert.Empty(t, b.Search(nil, nil))
}

func TestBank_RandomEmpty(t *testing.T) {
	b := New()

	_, ok := b.Random("", "")

	assert.False(t, ok)
}

func TestBank_RandomNoMatch(t *testing.T) {
	b := seeded()

	_, ok := b.Random("Networking", "")

	assert.False(t, ok)
}

func TestBank_RandomMembership(t *testing.T) {
	b := seeded()
	want := map[int]bool{1: true, 5: true}

	seen := map[int]bool{}
	for range 200 {
		q, ok := b.Random("Algorithms", "Easy")
		require.True(t, ok)
		require.True(t, want[q.ID], "unexpected question %d", q.ID)
		seen[q.ID] = true
	}
	assert.Len(t, seen, 2, "both candidates should be drawn eventually")
}

func TestBank_RandomSeededIsReproducible(t *testing.T) {
	draw := func() []int {
		b := seeded()
		var out []int
		for range 10 {
			q, _ := b.Random("", "")
			out = append(out, q.ID)
		}
		return out
	}

	assert.Equal(t, draw(), draw())
}

func TestBank_Statistics(t *testing.T) {
	b := New()
	b.Add(Question{ID: 1, Text: "x", Topic: "A", Difficulty: "Easy"})
	b.Add(Question{ID: 2, Text: "y", Topic: "A", Difficulty: "Hard"})
	b.Add(Question{ID: 3, Text: "z", Topic: "B", Difficulty: "Easy"})

	stats := b.Statistics()

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, stats.ByTopic)
	assert.Equal(t, map[string]int{"Easy": 2, "Hard": 1}, stats.ByDifficulty)
}

func TestBank_NextIDNeverReusesAfterDelete(t *testing.T) {
	b := New()
	b.Add(Question{ID: 1, Text: "a", Topic: "T", Difficulty: "D"})
	b.Add(Question{ID: 2, Text: "b", Topic: "T", Difficulty: "D"})
	b.Add(Question{ID: 3, Text: "c", Topic: "T", Difficulty: "D"})
	require.NoError(t, b.Delete(2))

	// count+1 would be 3 and overwrite an existing question.
	next := b.NextID()

	assert.Equal(t, 4, next)
	assert.False(t, b.Has(next))
}

func TestBank_CreateAssignsIncreasingIDs(t *testing.T) {
	b := New()
	first := b.Create("a", "T", "Easy")
	second := b.Create("b", "T", "Easy")
	require.NoError(t, b.Delete(first.ID))
	require.NoError(t, b.Delete(second.ID))

	third := b.Create("c", "T", "Hard")

	assert.Equal(t, []int{1, 2, 3}, []int{first.ID, second.ID, third.ID})
	assert.Equal(t, []int{3}, ids(b.All()))
	assertIndexConsistent(t, b)
}

func TestBank_Replace(t *testing.T) {
	b := seeded()

	b.Replace([]Question{
		{ID: 10, Text: "n", Topic: "Networking", Difficulty: "Easy"},
		{ID: 4, Text: "s", Topic: "Security", Difficulty: "Hard"},
	})

	assert.Equal(t, []int{4, 10}, ids(b.All()))
	assert.Equal(t, 11, b.NextID())
	assert.Equal(t, map[string]int{"Networking": 1, "Security": 1}, b.Statistics().ByTopic)
	assertIndexConsistent(t, b)
}

func TestBank_ReplaceDuplicateIDsKeepsLast(t *testing.T) {
	b := New()

	b.Replace([]Question{
		{ID: 1, Text: "first", Topic: "A", Difficulty: "Easy"},
		{ID: 1, Text: "second", Topic: "B", Difficulty: "Easy"},
	})

	got, err := b.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Text)
	assertIndexConsistent(t, b)
}

func TestBank_IndexConsistencyUnderMixedOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	b := New(WithRand(rng))
	topics := []string{"A", "B", "C"}
	levels := []string{"Easy", "Medium", "Hard"}

	for i := range 500 {
		id := rng.IntN(20) + 1
		switch rng.IntN(3) {
		case 0:
			b.Add(Question{ID: id, Text: "q", Topic: topics[rng.IntN(3)], Difficulty: levels[rng.IntN(3)]})
		case 1:
			_ = b.Update(id, Changes{Topic: topics[rng.IntN(3)], Difficulty: levels[rng.IntN(3)]})
		case 2:
			_ = b.Delete(id)
		}
		if i%50 == 0 {
			assertIndexConsistent(t, b)
		}
	}
	assertIndexConsistent(t, b)
}

func TestBank_CRLFStoredAsLF(t *testing.T) {
	b := New()

	created := b.Create("line1\r\nline2", "Data\r\nStructures", "Easy")
	assert.Equal(t, "line1\nline2", created.Text)
	assert.Equal(t, "Data\nStructures", created.Topic)

	b.Add(Question{ID: 7, Text: "a\r\nb\rc", Topic: "T", Difficulty: "Hard\r\n"})
	q, err := b.Get(7)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\rc", q.Text)
	assert.Equal(t, "Hard\n", q.Difficulty)

	require.NoError(t, b.Update(7, Changes{Text: "x\r\ny", Topic: "T2\r\n"}))
	q, err = b.Get(7)
	require.NoError(t, err)
	assert.Equal(t, "x\ny", q.Text)
	assert.Equal(t, "T2\n", q.Topic)
	assert.Equal(t, 1, b.Statistics().ByTopic["T2\n"])
	assertIndexConsistent(t, b)
}
