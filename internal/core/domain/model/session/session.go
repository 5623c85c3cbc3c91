// Package session contains the PackingSession aggregate: the allocation ledger,
// container lifecycle, and issue escalation state for one consolidated packing
// run.
//
// A session is operator-serial: all mutating operations are invoked
// synchronously on behalf of a single operator. The only concurrency the
// aggregate defends against itself is the completion submission, which must be
// single-flight while the network call is outstanding. Sync-driven
// reconciliation replaces whole derived views (order statuses, rebuilt pools)
// and never touches container or ledger state, so an incoming event cannot
// corrupt an open allocation edit.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"packing/internal/core/domain/model/container"
	"packing/internal/core/domain/model/kernel"
	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/pool"
	"packing/internal/pkg/errs"
)

var (
	// ErrSessionIsNotConstructed is returned when a PackingSession was not
	// created through NewPackingSession.
	ErrSessionIsNotConstructed = errors.New("PackingSession must be created via NewPackingSession constructor")

	// ErrItemNotInPool is returned when an operation references an item key the
	// pool does not contain.
	ErrItemNotInPool = errors.New("item not in pool")

	// ErrContainerNotFound is returned when an operation references a container
	// id the session does not know.
	ErrContainerNotFound = errors.New("container not found in session")

	// ErrPreviousContainerNotCompleted is returned by CreateContainer while the
	// most recently created container is still open.
	ErrPreviousContainerNotCompleted = errors.New("previous container is not completed")

	// ErrQuantityExceedsRemaining is returned when an explicit assignment asks
	// for more than the item's remaining quantity.
	ErrQuantityExceedsRemaining = errors.New("quantity exceeds remaining")

	// ErrRemovalNeedsConfirmation is returned when a non-empty open container is
	// removed without the caller's explicit confirmation.
	ErrRemovalNeedsConfirmation = errors.New("removing a non-empty container requires confirmation")

	// ErrSubmissionInFlight is returned when a second completion submission is
	// attempted while one is outstanding.
	ErrSubmissionInFlight = errors.New("completion submission already in flight")

	// ErrOrderAlreadyInReview is returned when issues are escalated while an
	// active order is already under review.
	ErrOrderAlreadyInReview = errors.New("an active order is already in review")

	// ErrNoIssuesToEscalate is returned when a review is requested without any
	// reported issues.
	ErrNoIssuesToEscalate = errors.New("no issues reported")
)

// PackingSession is the aggregate root of one consolidated packing run. It owns
// the pooled items, the containers being filled, the per-item allocation ledger,
// and the issue reports pending escalation.
//
// Invariants:
//   - assigned(key) never exceeds required(key); explicit assignments of
//     non-positive or excess quantity are rejected, never clamped
//   - at most one container is open at a time
//   - completed containers are immutable except for the labeled marker
//   - session completion requires assigned == required for every pooled item
type PackingSession struct {
	id           kernel.UUID
	customerName string

	orders     []*order.SourceOrder
	ordersByID map[string]*order.SourceOrder

	pooled    []*pool.PooledItem
	poolByKey map[string]*pool.PooledItem

	containers   []*container.Container
	containerSeq int

	issues []IssueReport

	// consumedFrom tracks, per item key, how much of each source order's
	// contribution is already allocated. It backs the FIFO source breakdown on
	// container lines and is credited back on unassignment.
	consumedFrom map[string]map[string]int

	submitting   atomic.Bool
	lastActivity time.Time

	isConstructed bool
}

// NewPackingSession creates a session over an already-fetched order set and its
// pooled items. Both come from the start-session workflow, which is atomic: a
// failed order fetch means no session is created at all.
func NewPackingSession(
	id kernel.UUID,
	customerName string,
	orders []*order.SourceOrder,
	pooled []*pool.PooledItem,
) (*PackingSession, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if customerName == "" {
		return nil, errs.NewValueIsRequiredError("customerName")
	}

	s := &PackingSession{
		id:            id,
		customerName:  customerName,
		consumedFrom:  make(map[string]map[string]int),
		lastActivity:  time.Now().UTC(),
		isConstructed: true,
	}

	if err := s.replacePool(orders, pooled); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the session was built through the constructor.
func (s *PackingSession) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// ID returns the session identifier.
func (s *PackingSession) ID() kernel.UUID {
	return s.id
}

// CustomerName returns the customer the session packs for.
func (s *PackingSession) CustomerName() string {
	return s.customerName
}

// Orders returns the active source orders. The slice is a copy.
func (s *PackingSession) Orders() []*order.SourceOrder {
	orders := make([]*order.SourceOrder, len(s.orders))
	copy(orders, s.orders)
	return orders
}

// OrderIDs returns the active order identifiers in session order.
func (s *PackingSession) OrderIDs() []string {
	ids := make([]string, len(s.orders))
	for i, o := range s.orders {
		ids[i] = o.ID()
	}
	return ids
}

// OrderByID returns the active order with the given id, nil when the id is not
// part of the session.
func (s *PackingSession) OrderByID(orderID string) *order.SourceOrder {
	return s.ordersByID[orderID]
}

// PooledItems returns the pooled items in pool order. The slice is a copy.
func (s *PackingSession) PooledItems() []*pool.PooledItem {
	pooled := make([]*pool.PooledItem, len(s.pooled))
	copy(pooled, s.pooled)
	return pooled
}

// Containers returns the containers in creation order. The slice is a copy.
func (s *PackingSession) Containers() []*container.Container {
	containers := make([]*container.Container, len(s.containers))
	copy(containers, s.containers)
	return containers
}

// Touch records operator activity for idle-session expiry.
func (s *PackingSession) Touch() {
	s.lastActivity = time.Now().UTC()
}

// LastActivity returns the time of the last operator interaction.
func (s *PackingSession) LastActivity() time.Time {
	return s.lastActivity
}

// Required returns the pooled required quantity for an item, zero for unknown keys.
func (s *PackingSession) Required(itemKey string) int {
	if item, ok := s.poolByKey[itemKey]; ok {
		return item.RequiredQty()
	}
	return 0
}

// Assigned returns the total quantity of an item allocated across all containers.
func (s *PackingSession) Assigned(itemKey string) int {
	total := 0
	for _, c := range s.containers {
		total += c.AssignedQty(itemKey)
	}
	return total
}

// Remaining returns required minus assigned for an item. A negative value is a
// validation failure surfaced at completion; it is never clamped.
func (s *PackingSession) Remaining(itemKey string) int {
	return s.Required(itemKey) - s.Assigned(itemKey)
}

// CreateContainer opens a new container. It fails while the most recently
// created container is still open, enforcing "finish current before starting
// next". Container ids are session-scoped sequence codes ("C1", "C2", ...).
func (s *PackingSession) CreateContainer() (*container.Container, error) {
	if last := s.lastContainer(); last != nil && !last.Status().IsFinished() {
		return nil, fmt.Errorf("%w: %s", ErrPreviousContainerNotCompleted, last.ID())
	}

	s.containerSeq++
	c, err := container.NewContainer(fmt.Sprintf("C%d", s.containerSeq))
	if err != nil {
		return nil, err
	}

	s.containers = append(s.containers, c)
	return c, nil
}

// CompleteContainer freezes an open container's contents.
// Fails for unknown ids and for containers without lines.
func (s *PackingSession) CompleteContainer(containerID string) error {
	c, err := s.containerByID(containerID)
	if err != nil {
		return err
	}
	return c.Complete()
}

// RemoveContainer discards an open container. A completed container cannot be
// removed. Removing a non-empty container requires confirmed=true; its lines
// are credited back to the pool, so remaining quantities recompute.
func (s *PackingSession) RemoveContainer(containerID string, confirmed bool) error {
	c, err := s.containerByID(containerID)
	if err != nil {
		return err
	}
	if c.Status() != container.Open {
		return fmt.Errorf("%w: %s is %s", container.ErrContainerIsNotOpen, c.ID(), c.Status())
	}

	lines := c.Lines()
	if len(lines) > 0 && !confirmed {
		return fmt.Errorf("%w: %s", ErrRemovalNeedsConfirmation, containerID)
	}

	for _, l := range lines {
		s.creditBack(l)
	}

	for i, candidate := range s.containers {
		if candidate.ID() == containerID {
			s.containers = append(s.containers[:i], s.containers[i+1:]...)
			break
		}
	}
	return nil
}

// MarkContainerLabeled records label acknowledgment on a completed container.
// Repeated calls are no-ops, so reprints are safe.
func (s *PackingSession) MarkContainerLabeled(containerID string) error {
	c, err := s.containerByID(containerID)
	if err != nil {
		return err
	}
	return c.MarkLabeled()
}

// AssignItem allocates an explicit quantity of a pooled item to a container.
//
// Fails when:
//   - the item key is not in the pool
//   - qty is not positive
//   - qty exceeds the item's remaining quantity
//   - the container is unknown or no longer open
func (s *PackingSession) AssignItem(containerID, itemKey string, qty int) error {
	item, ok := s.poolByKey[itemKey]
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotInPool, itemKey)
	}
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("%d is not greater than 0", qty))
	}
	if remaining := s.Remaining(itemKey); qty > remaining {
		return fmt.Errorf("%w: %s has %d remaining, requested %d",
			ErrQuantityExceedsRemaining, itemKey, remaining, qty)
	}

	c, err := s.containerByID(containerID)
	if err != nil {
		return err
	}

	portions := s.takePortions(item, qty)
	if err := c.Put(itemKey, qty, portions); err != nil {
		s.creditPortions(itemKey, portions)
		return err
	}
	return nil
}

// FillRemainder assigns, for each given item key with a positive remaining
// quantity, exactly that remaining amount to the container. Keys whose
// remainder is zero are skipped. This is the bulk "fill remainder" operation;
// a drag-style single-item drop is FillRemainder with one key.
func (s *PackingSession) FillRemainder(containerID string, itemKeys []string) error {
	c, err := s.containerByID(containerID)
	if err != nil {
		return err
	}
	if c.Status() != container.Open {
		return fmt.Errorf("%w: %s is %s", container.ErrContainerIsNotOpen, c.ID(), c.Status())
	}

	for _, itemKey := range itemKeys {
		if _, ok := s.poolByKey[itemKey]; !ok {
			return fmt.Errorf("%w: %s", ErrItemNotInPool, itemKey)
		}
	}

	for _, itemKey := range itemKeys {
		remaining := s.Remaining(itemKey)
		if remaining <= 0 {
			continue
		}
		if err := s.AssignItem(containerID, itemKey, remaining); err != nil {
			return err
		}
	}
	return nil
}

// UnassignItem removes an item's whole line from a container and restores the
// quantity to the pool. There is no partial-decrement primitive.
func (s *PackingSession) UnassignItem(containerID, itemKey string) error {
	c, err := s.containerByID(containerID)
	if err != nil {
		return err
	}

	line, err := c.RemoveLine(itemKey)
	if err != nil {
		return err
	}

	s.creditBack(line)
	return nil
}

// ReportIssue records a defect report for a pooled item, replacing any prior
// report for the same item.
func (s *PackingSession) ReportIssue(itemKey string, tags []string, note string) error {
	if _, ok := s.poolByKey[itemKey]; !ok {
		return fmt.Errorf("%w: %s", ErrItemNotInPool, itemKey)
	}

	report, err := NewIssueReport(itemKey, tags, note)
	if err != nil {
		return err
	}

	for i := range s.issues {
		if s.issues[i].ItemKey() == itemKey {
			s.issues[i] = report
			return nil
		}
	}
	s.issues = append(s.issues, report)
	return nil
}

// Issues returns the pending issue reports in first-reported order. The slice
// is a copy.
func (s *PackingSession) Issues() []IssueReport {
	issues := make([]IssueReport, len(s.issues))
	copy(issues, s.issues)
	return issues
}

// IssueSummary renders all pending reports as one text block for review
// submissions.
func (s *PackingSession) IssueSummary() string {
	lines := make([]string, len(s.issues))
	for i, report := range s.issues {
		lines[i] = report.Text()
	}
	return strings.Join(lines, "\n")
}

// BeginReviewEscalation validates that a review fan-out may start: at least one
// issue is reported and no active order is already under review.
func (s *PackingSession) BeginReviewEscalation() error {
	if len(s.issues) == 0 {
		return ErrNoIssuesToEscalate
	}
	for _, o := range s.orders {
		if o.Status() == order.Review {
			return fmt.Errorf("%w: %s", ErrOrderAlreadyInReview, o.ID())
		}
	}
	return nil
}

// ConfirmReviewEscalation marks every active order as under review and clears
// the local issue reports. Called after all review submissions succeeded.
func (s *PackingSession) ConfirmReviewEscalation() error {
	for _, o := range s.orders {
		if err := o.SendToReview(); err != nil {
			return err
		}
	}
	s.issues = nil
	return nil
}

// ApplyExternalStatus reconciles one active order against a status reported by
// the sync stream. Events for orders outside the active set report ok=false
// and are ignored by the caller.
func (s *PackingSession) ApplyExternalStatus(orderID string, status order.Status) (bool, error) {
	o, ok := s.ordersByID[orderID]
	if !ok {
		return false, nil
	}
	return true, o.ApplyStatus(status)
}

// RebuildPool replaces the active order set and pooled items after an external
// correction. Containers and the allocation ledger are left untouched;
// remaining quantities recompute against the new required amounts.
func (s *PackingSession) RebuildPool(orders []*order.SourceOrder, pooled []*pool.PooledItem) error {
	return s.replacePool(orders, pooled)
}

// CompletionBlockers collects every condition that prevents completing the
// session. An empty result means the session may be submitted. Failures are
// reported, never auto-corrected.
func (s *PackingSession) CompletionBlockers() []string {
	blockers := make([]string, 0)

	for _, item := range s.pooled {
		remaining := s.Remaining(item.Key())
		switch {
		case remaining > 0:
			blockers = append(blockers, fmt.Sprintf("item %s has %d unassigned", item.Key(), remaining))
		case remaining < 0:
			blockers = append(blockers, fmt.Sprintf("item %s is over-assigned by %d", item.Key(), -remaining))
		}
	}

	for _, c := range s.containers {
		if !c.Status().IsFinished() {
			blockers = append(blockers, fmt.Sprintf("container %s is not completed", c.ID()))
		}
	}

	for _, o := range s.orders {
		if o.Status() == order.Review {
			blockers = append(blockers, fmt.Sprintf("order %s is in review", o.ID()))
		}
	}

	for _, report := range s.issues {
		if !s.issueResolved(report) {
			blockers = append(blockers, fmt.Sprintf("unresolved issue for item %s", report.ItemKey()))
		}
	}

	return blockers
}

// BeginSubmission acquires the single-flight completion latch.
// A second call while a submission is outstanding fails with
// ErrSubmissionInFlight.
func (s *PackingSession) BeginSubmission() error {
	if !s.submitting.CompareAndSwap(false, true) {
		return ErrSubmissionInFlight
	}
	return nil
}

// EndSubmission releases the completion latch after the network call settled.
func (s *PackingSession) EndSubmission() {
	s.submitting.Store(false)
}

// issueResolved reports whether every order contributing to the reported item
// has since been re-invoiced, which lifts the completion block.
func (s *PackingSession) issueResolved(report IssueReport) bool {
	item, ok := s.poolByKey[report.ItemKey()]
	if !ok {
		// Item vanished in a pool rebuild; nothing left to resolve.
		return true
	}

	for _, c := range item.Contributions() {
		o, ok := s.ordersByID[c.OrderID()]
		if !ok {
			continue
		}
		if o.Status() != order.ReInvoiced {
			return false
		}
	}
	return true
}

func (s *PackingSession) lastContainer() *container.Container {
	if len(s.containers) == 0 {
		return nil
	}
	return s.containers[len(s.containers)-1]
}

func (s *PackingSession) containerByID(containerID string) (*container.Container, error) {
	for _, c := range s.containers {
		if c.ID() == containerID {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrContainerNotFound, containerID)
}

// takePortions consumes contribution quantities FIFO for an assignment and
// returns the per-order breakdown. Quantity beyond the tracked contributions
// (possible after a pool rebuild shrank them) is attributed to the first
// contributing order.
func (s *PackingSession) takePortions(item *pool.PooledItem, qty int) []container.SourcePortion {
	consumed := s.consumedFrom[item.Key()]
	if consumed == nil {
		consumed = make(map[string]int)
		s.consumedFrom[item.Key()] = consumed
	}

	portions := make([]container.SourcePortion, 0, 1)
	left := qty
	contributions := item.Contributions()

	for _, c := range contributions {
		if left == 0 {
			break
		}
		available := c.Qty() - consumed[c.OrderID()]
		if available <= 0 {
			continue
		}
		take := available
		if take > left {
			take = left
		}
		consumed[c.OrderID()] += take
		portions = append(portions, container.SourcePortion{OrderID: c.OrderID(), Qty: take})
		left -= take
	}

	if left > 0 && len(contributions) > 0 {
		first := contributions[0].OrderID()
		consumed[first] += left
		portions = mergeInto(portions, container.SourcePortion{OrderID: first, Qty: left})
	}

	return portions
}

// creditBack returns a removed line's quantities to the contribution ledger.
func (s *PackingSession) creditBack(line container.Line) {
	s.creditPortions(line.ItemKey(), line.Sources())
}

func (s *PackingSession) creditPortions(itemKey string, portions []container.SourcePortion) {
	consumed := s.consumedFrom[itemKey]
	if consumed == nil {
		return
	}
	for _, p := range portions {
		consumed[p.OrderID] -= p.Qty
		if consumed[p.OrderID] <= 0 {
			delete(consumed, p.OrderID)
		}
	}
}

func (s *PackingSession) replacePool(orders []*order.SourceOrder, pooled []*pool.PooledItem) error {
	if len(orders) == 0 {
		return errs.NewValueIsRequiredError("orders")
	}

	ordersByID := make(map[string]*order.SourceOrder, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		ordersByID[o.ID()] = o
	}

	poolByKey := make(map[string]*pool.PooledItem, len(pooled))
	for _, item := range pooled {
		if err := item.Validate(); err != nil {
			return err
		}
		poolByKey[item.Key()] = item
	}

	s.orders = make([]*order.SourceOrder, len(orders))
	copy(s.orders, orders)
	s.ordersByID = ordersByID
	s.pooled = make([]*pool.PooledItem, len(pooled))
	copy(s.pooled, pooled)
	s.poolByKey = poolByKey
	return nil
}

func mergeInto(portions []container.SourcePortion, p container.SourcePortion) []container.SourcePortion {
	for i := range portions {
		if portions[i].OrderID == p.OrderID {
			portions[i].Qty += p.Qty
			return portions
		}
	}
	return append(portions, p)
}
