package bank

// index maps a label (topic or difficulty) to the set of question IDs
// carrying it. Buckets are removed once they become empty.
type index map[string]map[int]struct{}

func (ix index) add(label string, id int) {
	bucket, ok := ix[label]
	if !ok {
		bucket = make(map[int]struct{})
		ix[label] = bucket
	}
	bucket[id] = struct{}{}
}

func (ix index) remove(label string, id int) {
	bucket, ok := ix[label]
	if !ok {
		return
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(ix, label)
	}
}

// union returns the IDs found in any of the named buckets. Unknown labels
// contribute nothing. The result is never nil.
func (ix index) union(labels []string) map[int]struct{} {
	out := make(map[int]struct{})
	for _, label := range labels {
		for id := range ix[label] {
			out[id] = struct{}{}
		}
	}
	return out
}

func (ix index) counts() map[string]int {
	out := make(map[string]int, len(ix))
	for label, bucket := range ix {
		out[label] = len(bucket)
	}
	return out
}
