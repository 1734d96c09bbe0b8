package initializers

import "math/rand"

type leCun struct {
	*varianceScaling
}

func LeCun(rng *rand.Rand) leCun {
	return leCun{VarianceScaling(rng).In()}
}

type he struct {
	*varianceScaling
}

func He(rng *rand.Rand) he {
	return he{VarianceScaling(rng).In().Factor(2)}
}

type xavier struct {
	*varianceScaling
}

func Xavier(rng *rand.Rand) xavier {
	return xavier{VarianceScaling(rng).Avg()}
}

func Glorot(rng *rand.Rand) xavier {
	return Xavier(rng)
}
