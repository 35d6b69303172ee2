package ikescan

/*
TransformSet accumulates the transform payloads nested inside a proposal.
Each Add appends one transform linked with next = Transform (more follow);
Finalize patches the most recently added transform so the chain ends with
NONE:

	| Transform #1  next=3 |
	| Transform #2  next=3 |
	| ...                  |
	| Transform #n  next=0 |

Transform numbers are assigned contiguously from 1 in Add order. A set is
owned by one build; it is not safe for concurrent use.
*/
type TransformSet struct {
	buf     []byte
	lastOff int
	count   int
}

func NewTransformSet() *TransformSet {
	return &TransformSet{}
}

// Add builds the transform and appends it to the set.
func (ts *TransformSet) Add(spec TransformSpec) *TransformSet {
	ts.count++
	trans := makeTransform(NextPayloadTransform, byte(ts.count), spec)
	ts.lastOff = len(ts.buf)
	ts.buf = append(ts.buf, trans...)
	return ts
}

// Count returns the number of transforms added so far.
func (ts *TransformSet) Count() int {
	return ts.count
}

// Finalize terminates the chain and returns the encoded transforms. At
// least one transform must have been added.
func (ts *TransformSet) Finalize() ([]byte, error) {
	if ts.count == 0 {
		return nil, errEmptyTransformSet{}
	}
	ts.buf[ts.lastOff] = NextPayloadNone
	return ts.buf, nil
}
