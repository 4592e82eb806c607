package merge

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tab-merge-control/internal/logging/events"
)

// Action ids identify which command produced an ActionResult so the model
// can run the matching post-processing.
const (
	ActionMergeExecute = "merge/execute"
	ActionMergeAll     = "merge/all"
	ActionSplit        = "split/current"
	ActionSplitWindow  = "split/window"
	ActionCloseTab     = "tab/close"
)

// SplitMode selects the behaviour of a per-window split.
type SplitMode int

const (
	SplitMoveOthers SplitMode = iota
	SplitMoveActive
)

func (m SplitMode) String() string {
	if m == SplitMoveActive {
		return "move-active"
	}
	return "move-others"
}

// moveToNewWindow creates a window seeded with the first tab and moves the
// remaining tabs after it. Returns the new window id.
func moveToNewWindow(ctx context.Context, c Context, tabIDs []int) (int, error) {
	windowID, err := c.Host.CreateWindow(ctx, tabIDs[0])
	if err != nil {
		return 0, fmt.Errorf("create window: %w", err)
	}
	if len(tabIDs) > 1 {
		if err := c.Host.MoveTabs(ctx, tabIDs[1:], windowID); err != nil {
			return 0, fmt.Errorf("move tabs: %w", err)
		}
	}
	return windowID, nil
}

// MergeCommand executes the third stage of the staged merge: the combined
// source and target tabs move into a freshly created window, in order.
func MergeCommand(c Context, combined []int) tea.Cmd {
	return func() tea.Msg {
		if len(combined) == 0 {
			return ActionResult{ID: ActionMergeExecute, Err: ErrNoTabs}
		}
		events.Merge.Execute(combined)
		windowID, err := moveToNewWindow(context.Background(), c, combined)
		if err != nil {
			return ActionResult{ID: ActionMergeExecute, Err: err}
		}
		return ActionResult{
			ID:   ActionMergeExecute,
			Info: fmt.Sprintf("merged %d tabs into window %d", len(combined), windowID),
		}
	}
}

// mergeAllTarget picks the window every other window folds into: the
// window hosting the control page when the host can locate it, otherwise
// the active window, otherwise the first window.
func mergeAllTarget(ctx context.Context, c Context) (int, bool) {
	if id, err := c.Host.LocateControlWindow(ctx); err == nil && id != 0 {
		if _, ok := c.Window(id); ok {
			return id, true
		}
	}
	if _, ok := c.Window(c.ActiveWindowID); ok {
		return c.ActiveWindowID, true
	}
	if len(c.Windows) > 0 {
		return c.Windows[0].ID, true
	}
	return 0, false
}

// MergeAllCommand folds every window into the target window, one window at
// a time, refocusing the target after each move so the browser keeps it in
// front. Empty windows are skipped; the first failure aborts the rest.
func MergeAllCommand(c Context) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		target, ok := mergeAllTarget(ctx, c)
		if !ok {
			return ActionResult{ID: ActionMergeAll, Err: ErrNoTabs}
		}
		var merged []int
		for _, w := range c.Windows {
			if w.ID == target || len(w.Tabs) == 0 {
				continue
			}
			if err := c.Host.MoveTabs(ctx, w.TabIDs(), target); err != nil {
				return ActionResult{
					ID:  ActionMergeAll,
					Err: fmt.Errorf("merge window %d: %w", w.ID, err),
				}
			}
			if err := c.Host.FocusWindow(ctx, target); err != nil {
				return ActionResult{
					ID:  ActionMergeAll,
					Err: fmt.Errorf("focus window %d: %w", target, err),
				}
			}
			merged = append(merged, w.ID)
		}
		events.Merge.All(target, merged)
		if len(merged) == 0 {
			return ActionResult{ID: ActionMergeAll, Info: "nothing to merge"}
		}
		return ActionResult{
			ID:   ActionMergeAll,
			Info: fmt.Sprintf("merged %d windows into window %d", len(merged), target),
		}
	}
}

// SplitCommand moves the given tabs into a new window. The caller keeps
// the selection intact until the result comes back so a failure loses
// nothing.
func SplitCommand(c Context, tabIDs []int) tea.Cmd {
	return func() tea.Msg {
		if len(tabIDs) == 0 {
			return ActionResult{ID: ActionSplit, Err: ErrNoTabs}
		}
		events.Merge.Split(tabIDs)
		windowID, err := moveToNewWindow(context.Background(), c, tabIDs)
		if err != nil {
			return ActionResult{ID: ActionSplit, Err: err}
		}
		return ActionResult{
			ID:   ActionSplit,
			Info: fmt.Sprintf("split %d tabs into window %d", len(tabIDs), windowID),
		}
	}
}

// SplitWindowCommand splits one window in two. SplitMoveOthers keeps the
// active tab where it is and moves the rest out; SplitMoveActive pops just
// the active tab into a window of its own.
func SplitWindowCommand(c Context, window WindowEntry, mode SplitMode) tea.Cmd {
	return func() tea.Msg {
		if len(window.Tabs) < 2 {
			return ActionResult{ID: ActionSplitWindow, Err: ErrNotEnoughTabs}
		}
		active, _ := window.ActiveTab()
		events.Merge.SplitWindow(window.ID, mode.String())
		ctx := context.Background()
		var movers []int
		if mode == SplitMoveActive {
			movers = []int{active.ID}
		} else {
			for _, t := range window.Tabs {
				if t.ID != active.ID {
					movers = append(movers, t.ID)
				}
			}
		}
		windowID, err := moveToNewWindow(ctx, c, movers)
		if err != nil {
			return ActionResult{ID: ActionSplitWindow, Err: err}
		}
		// Moving the others leaves the user looking at a one-tab rump;
		// follow them to the window that received the rest.
		if mode == SplitMoveOthers {
			if err := c.Host.FocusWindow(ctx, windowID); err != nil {
				return ActionResult{ID: ActionSplitWindow, Err: fmt.Errorf("focus window %d: %w", windowID, err)}
			}
		}
		return ActionResult{
			ID:   ActionSplitWindow,
			Info: fmt.Sprintf("split window %d into window %d", window.ID, windowID),
		}
	}
}

// CloseTabCommand asks the host to close a single tab.
func CloseTabCommand(c Context, tabID int) tea.Cmd {
	return func() tea.Msg {
		if err := c.Host.CloseTab(context.Background(), tabID); err != nil {
			return ActionResult{ID: ActionCloseTab, Err: fmt.Errorf("close tab %d: %w", tabID, err)}
		}
		return ActionResult{
			ID:   ActionCloseTab,
			Info: fmt.Sprintf("closed tab %d", tabID),
		}
	}
}
