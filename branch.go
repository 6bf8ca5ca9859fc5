package greenzone

import (
	"github.com/sirkon/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// AddBranch создание ветки из текущего состояния основной линии. Ветка
// ссылается на те же записи, данные не копируются. Возвращается
// наименьший свободный идентификатор ветки.
func (c *Cache) AddBranch() int {
	id := 0
	for {
		if _, ok := c.branchID[id]; !ok {
			break
		}
		id++
	}

	c.attachBranch(id)
	return id
}

// UpdateBranch перестроение ветки по текущему состоянию основной линии.
func (c *Cache) UpdateBranch(id int) error {
	if err := c.detachBranch(id); err != nil {
		return errors.Wrap(err, "detach branch states").Int("branch-id", id)
	}

	c.attachBranch(id)
	c.reportUsage()
	return nil
}

// RemoveBranch удаление ветки. Записи, на которые больше никто не
// ссылается, освобождаются.
func (c *Cache) RemoveBranch(id int) error {
	if _, ok := c.branchID[id]; !ok {
		return nil
	}

	if err := c.detachBranch(id); err != nil {
		return errors.Wrap(err, "detach branch states").Int("branch-id", id)
	}
	delete(c.branchID, id)

	c.reportUsage()
	return nil
}

// LoadBranch замена основной линии содержимым ветки начиная с первого кадра.
// Данные копируются, чтобы основная линия оставалась независимой от ветки.
// Возвращает false если такой ветки нет.
func (c *Cache) LoadBranch(id int) (bool, error) {
	if _, ok := c.branchID[id]; !ok {
		return false, nil
	}

	if _, err := c.Invalidate(1); err != nil {
		return true, errors.Wrap(err, "invalidate current states").Int("branch-id", id)
	}

	for _, frame := range c.BranchFrames(id) {
		if frame == 0 && c.current.has(0) {
			continue
		}

		r := c.branches[frame][id]
		data, err := r.bytes(c.store)
		if err != nil {
			return true, errors.Wrap(err, "read branch state").Int("branch-id", id).Int("frame", frame)
		}

		if err := c.SetState(frame, slices.Clone(data)); err != nil {
			return true, errors.Wrap(err, "copy branch state").Int("branch-id", id).Int("frame", frame)
		}
	}

	return true, nil
}

// Branches идентификаторы существующих веток по возрастанию.
func (c *Cache) Branches() []int {
	res := maps.Keys(c.branchID)
	slices.Sort(res)
	return res
}

// BranchFrames кадры ветки по возрастанию.
func (c *Cache) BranchFrames(id int) []int {
	var res []int
	for frame, holders := range c.branches {
		if _, ok := holders[id]; ok {
			res = append(res, frame)
		}
	}
	slices.Sort(res)

	return res
}

// BranchGet слепок кадра ветки. Возвращаемый слайс нельзя изменять.
func (c *Cache) BranchGet(id, frame int) ([]byte, bool, error) {
	r, ok := c.branches[frame][id]
	if !ok {
		return nil, false, nil
	}

	data, err := r.bytes(c.store)
	if err != nil {
		return nil, false, errors.Wrap(err, "read branch state").Int("branch-id", id).Int("frame", frame)
	}

	return data, true, nil
}

// DuplicateOf ищет другого держателя той же записи кадра, что и у данной
// ветки (или основной линии при branch == Primary). Возвращает Primary,
// если это основная линия, иначе идентификатор первой такой ветки.
func (c *Cache) DuplicateOf(frame, branch int) (holder int, ok bool) {
	var target *record
	if branch == Primary {
		target, _ = c.current.get(frame)
	} else {
		target = c.branches[frame][branch]
	}
	if target == nil {
		return 0, false
	}

	if branch != Primary {
		if r, ok := c.current.get(frame); ok && r == target {
			return Primary, true
		}
	}

	holders := c.branches[frame]
	ids := maps.Keys(holders)
	slices.Sort(ids)
	for _, id := range ids {
		if id != branch && holders[id] == target {
			return id, true
		}
	}

	return 0, false
}

func (c *Cache) attachBranch(id int) {
	c.branchID[id] = struct{}{}

	for _, frame := range c.current.keys() {
		r, _ := c.current.get(frame)
		holders, ok := c.branches[frame]
		if !ok {
			holders = map[int]*record{}
			c.branches[frame] = holders
		}

		r.refs++
		holders[id] = r
	}
}

func (c *Cache) detachBranch(id int) error {
	for _, frame := range c.BranchFrames(id) {
		holders := c.branches[frame]
		r := holders[id]

		delete(holders, id)
		if len(holders) == 0 {
			delete(c.branches, frame)
		}

		if err := c.unref(r); err != nil {
			return errors.Wrap(err, "release branch state").Int("frame", frame)
		}
	}

	return nil
}
