package greenzone

import "golang.org/x/exp/slices"

func newIndex() *index {
	return &index{
		records: map[int]*record{},
	}
}

// index упорядоченное отображение номера кадра в запись слепка.
type index struct {
	frames  []int // возрастающие номера кадров
	records map[int]*record
}

func (x *index) len() int {
	return len(x.frames)
}

func (x *index) get(frame int) (*record, bool) {
	r, ok := x.records[frame]
	return r, ok
}

func (x *index) has(frame int) bool {
	_, ok := x.records[frame]
	return ok
}

// put добавление или замена записи кадра.
func (x *index) put(frame int, r *record) {
	if _, ok := x.records[frame]; !ok {
		pos, _ := slices.BinarySearch(x.frames, frame)
		x.frames = slices.Insert(x.frames, pos, frame)
	}

	x.records[frame] = r
}

func (x *index) delete(frame int) (*record, bool) {
	r, ok := x.records[frame]
	if !ok {
		return nil, false
	}

	pos, _ := slices.BinarySearch(x.frames, frame)
	x.frames = slices.Delete(x.frames, pos, pos+1)
	delete(x.records, frame)

	return r, true
}

// at кадр с данной позицией в порядке возрастания.
func (x *index) at(pos int) int {
	return x.frames[pos]
}

// lastBefore последний кадр строго меньше данного.
func (x *index) lastBefore(frame int) (int, bool) {
	pos, _ := slices.BinarySearch(x.frames, frame)
	if pos == 0 {
		return 0, false
	}

	return x.frames[pos-1], true
}

// lastAtOrBefore последний кадр не больше данного.
func (x *index) lastAtOrBefore(frame int) (int, bool) {
	pos, found := slices.BinarySearch(x.frames, frame)
	if found {
		return frame, true
	}
	if pos == 0 {
		return 0, false
	}

	return x.frames[pos-1], true
}

// from кадры не меньше данного.
func (x *index) from(frame int) []int {
	pos, _ := slices.BinarySearch(x.frames, frame)
	return slices.Clone(x.frames[pos:])
}

// keys копия всех кадров по возрастанию.
func (x *index) keys() []int {
	return slices.Clone(x.frames)
}

func (x *index) last() (int, bool) {
	if len(x.frames) == 0 {
		return 0, false
	}

	return x.frames[len(x.frames)-1], true
}
