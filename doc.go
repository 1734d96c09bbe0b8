// Package backprop provides a feed-forward, fully connected neural network of sigmoid units,
// trained by back-propagation. Each layer is computed in parallel across its units by a pool of
// worker goroutines that lives as long as the Network.
//
// # Creating Networks
//
// The center of all training is the Network, initialized by:
//
//	net := new(bp.Network)
//
// For brevity, backprop is abbreviated 'bp'.
//
// The first layer sets the number of inputs; every layer after it takes the outputs of the one
// before:
//
//	if err := net.AddFirst(inputSize, hiddenSize); err != nil {
//		return err
//	}
//	if err := net.Add(outputSize); err != nil {
//		return err
//	}
//
// Weights must be set before use, either randomly with InitGaussian or InitWeights (the
// subpackage "initializers" provides generators), or from a saved vector with SetWeights. Weights
// returns that vector.
//
// # Propagation
//
// A single pattern is learned with a forward pass followed by a backward pass:
//
//	outs, err := net.ProcessInputs(inputs)
//	// errs[i] = targets[i] - outs[i]
//	err = net.ProcessErrors(errs)
//
// ProcessErrors adjusts the weights immediately, with the rate given by SetLearningRate. By
// default the change to each weight is the plain delta rule; other Optimizers (such as momentum,
// in the subpackage "optimizers") can be set with SetOptimizer.
//
// # Training
//
// Whole datasets are learned by a Trainer, which is configured with TrainArgs:
//
//	data, err := bp.Data(dataset)
//	t, err := bp.NewTrainer(net, bp.TrainArgs{
//		TrainData:      data,
//		LearningRate:   0.5,
//		DecreaseFactor: 0.9,
//		RunCondition:   bp.TrainUntil(1000),
//	})
//	err = t.Execute(ctx)
//
// Progress is reported through TrainArgs.Update as a series of Events. Training ends when
// RunCondition returns false, when Stop is called, or when ctx is done.
package backprop
