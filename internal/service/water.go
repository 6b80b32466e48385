package service

import "math"

// ContainerState classifies one container on the water progress card.
type ContainerState string

const (
	ContainerFull  ContainerState = "full"
	ContainerHalf  ContainerState = "half"
	ContainerEmpty ContainerState = "empty"
)

const (
	defaultContainerLiters = 0.25

	// The card always drew nine glasses when no target was set.
	fallbackContainerCount = 9
)

// WaterProgress is the derived container view of the day's water intake.
type WaterProgress struct {
	ConsumedContainers  float64          `json:"consumedContainers"`
	RemainingContainers float64          `json:"remainingContainers"`
	Containers          []ContainerState `json:"containers"`
}

// ComputeWaterProgress derives container counts and per-container fill
// states from consumed vs. target volume. Pure presentational math with no
// side effects; it is recomputed on every call and never cached, so a
// change to either input is always reflected.
func ComputeWaterProgress(consumedLiters, targetLiters, containerLiters float64) WaterProgress {
	if containerLiters <= 0 {
		containerLiters = defaultContainerLiters
	}

	count := fallbackContainerCount
	if targetLiters > 0 {
		count = int(math.Ceil(targetLiters / containerLiters))
	}

	consumed := consumedLiters / containerLiters
	remaining := max(0, (targetLiters-consumedLiters)/containerLiters)

	containers := make([]ContainerState, count)
	for i := range containers {
		switch {
		case consumed >= float64(i+1):
			containers[i] = ContainerFull
		case consumed > float64(i):
			containers[i] = ContainerHalf
		default:
			containers[i] = ContainerEmpty
		}
	}

	return WaterProgress{
		ConsumedContainers:  consumed,
		RemainingContainers: remaining,
		Containers:          containers,
	}
}
