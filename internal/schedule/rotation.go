package schedule

// Advance moves a rotation one step forward and returns the new index
// and the member now responsible. A nil current index means the
// rotation has never advanced; the first step lands on index 0. The
// index wraps circularly, so advancing len(members) times returns to
// the starting position.
//
// members must be non-empty; callers validate roster size before a
// rotation is ever enabled.
func Advance(members []uint64, current *int) (int, uint64) {
	next := 0
	if current != nil {
		next = (*current + 1) % len(members)
	}
	return next, members[next]
}
