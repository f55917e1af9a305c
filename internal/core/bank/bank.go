// Package bank contains the in-memory question repository.
// A Bank owns every question record plus two secondary indexes (by topic and
// by difficulty) and keeps them consistent on every mutation. It does no I/O.
package bank

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
)

// Question is a single question record.
type Question struct {
	ID         int
	Text       string
	Topic      string
	Difficulty string
}

// Changes describes a partial update. Empty fields keep the current value.
type Changes struct {
	Text       string
	Topic      string
	Difficulty string
}

// IsEmpty reports whether no field would change.
func (c Changes) IsEmpty() bool {
	return c.Text == "" && c.Topic == "" && c.Difficulty == ""
}

// Stats summarizes the bank. Only labels with at least one question appear.
type Stats struct {
	Total        int
	ByTopic      map[string]int
	ByDifficulty map[string]int
}

// Bank is the question repository.
type Bank struct {
	mu           sync.RWMutex
	questions    map[int]Question
	byTopic      index
	byDifficulty index
	lastID       int
	rng          *rand.Rand
}

// Option configures a Bank.
type Option func(*Bank)

// WithRand sets the random source used by Random.
func WithRand(rng *rand.Rand) Option {
	return func(b *Bank) {
		b.rng = rng
	}
}

// New creates an empty Bank.
func New(opts ...Option) *Bank {
	b := &Bank{
		questions:    make(map[int]Question),
		byTopic:      make(index),
		byDifficulty: make(index),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return b
}

// Add stores q under q.ID. An existing record with the same ID is removed
// from its buckets first, so the indexes never hold a stale entry.
// CRLF line breaks in any field are stored as LF.
func (b *Bank) Add(q Question) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.put(q)
}

// Create stores a new question under the next unused ID and returns it.
func (b *Bank) Create(text, topic, difficulty string) Question {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.put(Question{ID: b.lastID + 1, Text: text, Topic: topic, Difficulty: difficulty})
}

// Update applies c to the question with the given ID.
func (b *Bank) Update(id int, c Changes) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	q, ok := b.questions[id]
	if !ok {
		return fmt.Errorf("question %d: %w", id, ErrNotFound)
	}

	c = Changes{
		Text:       normalizeNewlines(c.Text),
		Topic:      normalizeNewlines(c.Topic),
		Difficulty: normalizeNewlines(c.Difficulty),
	}
	if c.Text != "" {
		q.Text = c.Text
	}
	if c.Topic != "" && c.Topic != q.Topic {
		b.byTopic.remove(q.Topic, id)
		b.byTopic.add(c.Topic, id)
		q.Topic = c.Topic
	}
	if c.Difficulty != "" && c.Difficulty != q.Difficulty {
		b.byDifficulty.remove(q.Difficulty, id)
		b.byDifficulty.add(c.Difficulty, id)
		q.Difficulty = c.Difficulty
	}
	b.questions[id] = q
	return nil
}

// Delete removes the question with the given ID from the bank and both indexes.
func (b *Bank) Delete(id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	q, ok := b.questions[id]
	if !ok {
		return fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	b.drop(q)
	return nil
}

// Get returns the question with the given ID.
func (b *Bank) Get(id int) (Question, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	q, ok := b.questions[id]
	if !ok {
		return Question{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return q, nil
}

// Has reports whether a question with the given ID exists.
func (b *Bank) Has(id int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.questions[id]
	return ok
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}

// All returns every question ordered by ID.
func (b *Bank) All() []Question {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]int, 0, len(b.questions))
	for id := range b.questions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return b.collect(ids)
}

// Search returns the questions whose topic is one of topics and whose
// difficulty is one of difficulties. An empty filter matches everything.
// Unknown labels match nothing. Results are ordered by ID.
func (b *Bank) Search(topics, difficulties []string) []Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.collect(b.candidates(topics, difficulties))
}

// Random returns one question chosen uniformly among those matching the
// optional topic and difficulty. ok is false when nothing matches.
func (b *Bank) Random(topic, difficulty string) (q Question, ok bool) {
	var topics, difficulties []string
	if topic != "" {
		topics = []string{topic}
	}
	if difficulty != "" {
		difficulties = []string{difficulty}
	}

	// rng is not safe for concurrent use, so draw under the write lock.
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := b.candidates(topics, difficulties)
	if len(ids) == 0 {
		return Question{}, false
	}
	return b.questions[ids[b.rng.IntN(len(ids))]], true
}

// Statistics returns the total count and the size of every bucket.
func (b *Bank) Statistics() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return Stats{
		Total:        len(b.questions),
		ByTopic:      b.byTopic.counts(),
		ByDifficulty: b.byDifficulty.counts(),
	}
}

// NextID returns an ID that has never been used in this bank since it was
// created or last replaced.
func (b *Bank) NextID() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastID + 1
}

// Replace swaps the whole content of the bank for records. The new state is
// built aside and installed in one step.
func (b *Bank) Replace(records []Question) {
	fresh := &Bank{
		questions:    make(map[int]Question, len(records)),
		byTopic:      make(index),
		byDifficulty: make(index),
	}
	for _, q := range records {
		fresh.put(q)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.questions = fresh.questions
	b.byTopic = fresh.byTopic
	b.byDifficulty = fresh.byDifficulty
	b.lastID = fresh.lastID
}

// put inserts q and returns the stored record. Caller holds the write lock.
func (b *Bank) put(q Question) Question {
	q.Text = normalizeNewlines(q.Text)
	q.Topic = normalizeNewlines(q.Topic)
	q.Difficulty = normalizeNewlines(q.Difficulty)

	if old, ok := b.questions[q.ID]; ok {
		b.drop(old)
	}
	b.questions[q.ID] = q
	b.byTopic.add(q.Topic, q.ID)
	b.byDifficulty.add(q.Difficulty, q.ID)
	if q.ID > b.lastID {
		b.lastID = q.ID
	}
	return q
}

// drop removes q from the map and both indexes. Caller holds the write lock.
func (b *Bank) drop(q Question) {
	delete(b.questions, q.ID)
	b.byTopic.remove(q.Topic, q.ID)
	b.byDifficulty.remove(q.Difficulty, q.ID)
}

// candidates returns the sorted IDs that pass both filters. A filter is the
// union of the buckets named in it; the two filters are intersected.
func (b *Bank) candidates(topics, difficulties []string) []int {
	var topicIDs, difficultyIDs map[int]struct{}
	if len(topics) > 0 {
		topicIDs = b.byTopic.union(topics)
	}
	if len(difficulties) > 0 {
		difficultyIDs = b.byDifficulty.union(difficulties)
	}

	result := make([]int, 0, len(b.questions))
	for id := range b.questions {
		if topicIDs != nil {
			if _, ok := topicIDs[id]; !ok {
				continue
			}
		}
		if difficultyIDs != nil {
			if _, ok := difficultyIDs[id]; !ok {
				continue
			}
		}
		result = append(result, id)
	}
	slices.Sort(result)
	return result
}

// normalizeNewlines turns CRLF into LF. A CSV reader folds CRLF inside a
// quoted field to LF, so only LF text survives a save and load unchanged.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func (b *Bank) collect(ids []int) []Question {
	out := make([]Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.questions[id])
	}
	return out
}
