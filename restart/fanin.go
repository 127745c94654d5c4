package restart

import (
	channerics "github.com/niceyeti/channerics/channels"

	"multistart/heuristic"
	"multistart/tracker"
)

// StreamBests fans a set of per-worker result channels into one merged
// channel, mirroring the teacher's channerics.Merge-based episode fan-in
// (reinforcement.Train's `channerics.Merge(done, workers...)`). Most callers
// should drive ParallelMultistarter.Optimize instead; this is for callers
// that want to observe each worker's individual results as they land,
// rather than only the merged per-call best.
func StreamBests[T tracker.Copyable[T], C tracker.Cost](
	done <-chan struct{}, workers ...<-chan heuristic.SolutionCostPair[T, C],
) <-chan heuristic.SolutionCostPair[T, C] {
	return channerics.Merge(done, workers...)
}
