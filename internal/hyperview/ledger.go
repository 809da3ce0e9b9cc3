package hyperview

import (
	"sort"

	"github.com/samber/lo"
)

// ResourceChanges lists the display resources to release and to instantiate
// for one tick. Destroy runs before Create; an id present in both is a
// replacement of last tick's resource.
type ResourceChanges struct {
	Create  []string `json:"create"`
	Destroy []string `json:"destroy"`
}

// ResourceLedger records which render command ids are live. Every live id
// is recreated each tick since its geometry changed; ids that disappeared
// are destroyed.
type ResourceLedger struct {
	live []string
}

// Apply records cmds as the live set and returns the changes relative to the
// previous tick.
func (l *ResourceLedger) Apply(cmds []RenderCommand) ResourceChanges {
	ids := lo.Uniq(lo.Map(cmds, func(c RenderCommand, _ int) string { return c.ID }))
	ch := ResourceChanges{
		Create:  ids,
		Destroy: append([]string(nil), l.live...),
	}
	sort.Strings(ch.Destroy)
	l.live = ids
	return ch
}

// Vanished returns the ids that were live last tick but are not in cmds,
// without recording anything.
func (l *ResourceLedger) Vanished(cmds []RenderCommand) []string {
	ids := lo.Map(cmds, func(c RenderCommand, _ int) string { return c.ID })
	gone, _ := lo.Difference(l.live, ids)
	return gone
}

// Live is the set of ids created by the last Apply.
func (l *ResourceLedger) Live() []string { return append([]string(nil), l.live...) }

// Reset forgets every live id, returning them for release.
func (l *ResourceLedger) Reset() []string {
	out := l.live
	l.live = nil
	return out
}
