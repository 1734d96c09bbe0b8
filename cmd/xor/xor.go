package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"

	bp "github.com/sharnoff/backprop"
	"github.com/sharnoff/backprop/initializers"
)

const (
	statusFrequency int = 100

	// main hyperparameters
	learningRate   float64 = 1.5
	decreaseFactor float64 = 0.9
	targetError    float64 = 0.005
	maxEpochs      int     = 20000
	hiddenUnits    int     = 3

	seed int64 = 1
)

func format(fs ...float64) (str string) {
	for i := range fs {
		if i != 0 {
			str += ", "
		}
		str += fmt.Sprintf("%.4f", fs[i])
	}

	return
}

func train(ctx context.Context, net *bp.Network, dataset [][][]float64) {
	trainData, err := bp.Data(dataset)
	if err != nil {
		panic(err.Error())
	}

	checkData, err := bp.Data(dataset)
	if err != nil {
		panic(err.Error())
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	args := bp.TrainArgs{
		TrainData:      trainData,
		CheckData:      checkData,
		LearningRate:   learningRate,
		DecreaseFactor: decreaseFactor,
		RunCondition:   bp.Both(bp.TrainUntil(maxEpochs), bp.UntilError(targetError)),
		Logger:         logger,
		Update: func(e bp.Event) {
			switch e.Kind {
			case bp.IterationProcessed:
				if e.Epoch%statusFrequency == 0 {
					fmt.Printf("%d, %.6f, %v, %v\n", e.Epoch, e.TotalError, e.Performance, e.LearningRate)
				}
			case bp.StopConditionReached:
				fmt.Printf("Stopped after %d epochs (%v)\n", e.Epoch, e.Elapsed)
			}
		},
	}

	trainer, err := bp.NewTrainer(net, args)
	if err != nil {
		panic(err.Error())
	}

	fmt.Println("Starting training...")
	fmt.Println("Epoch, Total Error, Percent Correct, Learning Rate")
	if err = trainer.Execute(ctx); err != nil {
		fmt.Printf("Training ended early: %s\n", err)
		return
	}

	fmt.Printf("Done training! Total error %.6f\n", trainer.TotalError())
	fmt.Printf("Recent errors: %s\n", format(trainer.History()...))
}

func test(net *bp.Network, dataset [][][]float64) {
	fmt.Println("Testing...")
	for _, d := range dataset {
		outs, err := net.ProcessInputs(d[0])
		if err != nil {
			panic(err.Error())
		}
		fmt.Printf("%v → %s (want %v)\n", d[0], format(outs...), d[1])
	}
}

func main() {
	// the third input is a constant bias
	dataset := [][][]float64{
		{{0, 0, 1}, {0}},
		{{0, 1, 1}, {1}},
		{{1, 0, 1}, {1}},
		{{1, 1, 1}, {0}},
	}

	net := new(bp.Network)
	defer net.Close()

	fmt.Println("Setting up network...")
	if err := net.AddFirst(3, hiddenUnits); err != nil {
		panic(err.Error())
	}
	if err := net.Add(1); err != nil {
		panic(err.Error())
	}
	initializers.Xavier(rand.New(rand.NewSource(seed))).Set(net)
	fmt.Println("Done!")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	train(ctx, net, dataset)
	test(net, dataset)
}
