package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	bp "github.com/sharnoff/backprop"
	"github.com/sharnoff/backprop/initializers"
	"github.com/sharnoff/backprop/optimizers"
)

func data() []bp.Pattern {
	// the last input is a constant bias
	return []bp.Pattern{
		{Inputs: []float64{0, 0, 1}, Outputs: []float64{0}},
		{Inputs: []float64{0, 1, 1}, Outputs: []float64{0}},
		{Inputs: []float64{1, 0, 1}, Outputs: []float64{0}},
		{Inputs: []float64{1, 1, 1}, Outputs: []float64{1}},
	}
}

func main() {
	net := new(bp.Network)
	defer net.Close()

	fmt.Print("Setting up network...")
	if err := net.AddFirst(3, 1); err != nil {
		fmt.Printf("%s\n", errors.Wrapf(err, "Failed to add layer"))
		return
	}
	net.SetOptimizer(optimizers.Momentum_Lazy(0.5))
	initializers.Random(initializers.Uniform(rand.New(rand.NewSource(2))).Bounds(-0.5, 0.5)).Set(net)
	fmt.Println("Done!")

	learningRate, maxEons := 1.0, 200

	trainer, err := bp.NewTrainer(net, bp.TrainArgs{
		TrainData:    bp.Patterns(data()),
		CheckData:    bp.Patterns(data()),
		LearningRate: learningRate,
		RunCondition: bp.Both(bp.TrainUntil(maxEons), bp.UntilError(0.01)),
		Logger:       slog.New(slog.NewTextHandler(os.Stdout, nil)),
	})
	if err != nil {
		fmt.Printf("%s\n", errors.Wrapf(err, "Failed to create trainer"))
		return
	}

	fmt.Printf("starting training for up to %d eons\n", maxEons)
	if err = trainer.Execute(context.Background()); err != nil {
		fmt.Printf("%s\n", errors.Wrapf(err, "error in training during eon %d", trainer.Epoch()))
		return
	}
	fmt.Println("Done training... performing final tests")

	for i, d := range data() {
		outs, err := net.ProcessInputs(d.Inputs)
		if err != nil {
			fmt.Printf("%s\n\t- in and.main() at test %d", err.Error(), i)
			return
		}
		fmt.Printf("%v → %v\n", d.Outputs, outs)
	}
}
