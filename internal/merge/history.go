package merge

import (
	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/internal/objects"
)

// ancestorDepths walks the commit DAG from start, following both parents,
// and records the breadth-first depth of every reachable commit plus the
// order each was first reached. The first visit wins, so each commit keeps
// its minimum depth.
func ancestorDepths(repo *core.Repository, start string) (map[string]int, map[string]int, error) {
	depths := make(map[string]int)
	order := make(map[string]int)

	queue := []string{start}
	depths[start] = 0
	next := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if _, seen := order[id]; seen {
			continue
		}
		order[id] = next
		next++

		commit, err := objects.GetCommit(repo, id)
		if err != nil {
			return nil, nil, core.ObjectError("failed to load commit "+id, err)
		}
		for _, parent := range commit.Parents {
			if _, seen := depths[parent]; !seen {
				depths[parent] = depths[id] + 1
				queue = append(queue, parent)
			}
		}
	}
	return depths, order, nil
}

// FindSplitPoint returns the latest common ancestor of two commits: the
// common ancestor closest to the current-branch head, with ties broken by
// the deterministic breadth-first visit order on the current side.
func FindSplitPoint(repo *core.Repository, currentID, otherID string) (string, error) {
	if currentID == otherID {
		return currentID, nil
	}

	currentDepths, currentOrder, err := ancestorDepths(repo, currentID)
	if err != nil {
		return "", err
	}
	otherDepths, _, err := ancestorDepths(repo, otherID)
	if err != nil {
		return "", err
	}

	split := ""
	bestDepth, bestOrder := -1, -1
	for id, depth := range currentDepths {
		if _, common := otherDepths[id]; !common {
			continue
		}
		order := currentOrder[id]
		if split == "" || depth < bestDepth || (depth == bestDepth && order < bestOrder) {
			split = id
			bestDepth = depth
			bestOrder = order
		}
	}
	if split == "" {
		return "", core.ObjectError("no common ancestor between "+currentID+" and "+otherID, nil)
	}
	return split, nil
}
