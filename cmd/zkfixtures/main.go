// zkfixtures generates circuit input files for the balance-commitment and
// training-step circuits.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zkfl/circuit-fixtures/fixedpoint"
	"github.com/zkfl/circuit-fixtures/fixture"
	"github.com/zkfl/circuit-fixtures/hash"
	"github.com/zkfl/circuit-fixtures/hash/bn254/keccak"
	"github.com/zkfl/circuit-fixtures/hash/bn254/mimc"
	"github.com/zkfl/circuit-fixtures/hash/bn254/poseidon"
)

var (
	flagHash     string
	flagClientID int
	flagOutput   string
)

func hashFunction(name string) (hash.Function, error) {
	switch name {
	case "poseidon":
		return poseidon.HashPoseidon{}, nil
	case "mimc":
		return mimc.HashMiMC{}, nil
	case "keccak":
		return keccak.HashKeccak{}, nil
	}
	return nil, fmt.Errorf("unknown hash function %q", name)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:           "zkfixtures",
		Short:         "Generate deterministic test fixtures for the zkFL circuits",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagHash, "hash", "poseidon", "hash function: poseidon, mimc or keccak")
	root.PersistentFlags().IntVar(&flagClientID, "client-id", 1, "client identifier (public input)")
	root.PersistentFlags().StringVarP(&flagOutput, "output", "o", "test_input.json", "output file path")

	root.AddCommand(balanceCmd(), trainingCmd())
	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("fixture generation failed")
	}
}

func balanceCmd() *cobra.Command {
	var bitsArg []string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Commit to a binary dataset and emit per-leaf inclusion proofs",
		RunE: func(_ *cobra.Command, _ []string) error {
			hFn, err := hashFunction(flagHash)
			if err != nil {
				return err
			}
			bits := make([]int, len(bitsArg))
			for i, s := range bitsArg {
				if bits[i], err = strconv.Atoi(s); err != nil {
					return fmt.Errorf("invalid bit %q", s)
				}
			}
			f, err := fixture.NewBalanceFixture(hFn, flagClientID, bits)
			if err != nil {
				return err
			}
			if err := f.WriteFile(flagOutput); err != nil {
				return err
			}
			log.Info().
				Str("root", f.Root).
				Str("c0", f.C0).
				Str("c1", f.C1).
				Int("leaves", len(bits)).
				Str("output", flagOutput).
				Msg("balance fixture written")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&bitsArg, "bits", []string{"0", "1", "1", "0", "1", "1", "1", "0"}, "dataset bits, comma separated")
	return cmd
}

func trainingCmd() *cobra.Command {
	cfg := fixture.TrainingConfig{Codec: fixedpoint.Default}
	cmd := &cobra.Command{
		Use:   "training",
		Short: "Generate one clipped-SGD training-step fixture over a committed dataset",
		RunE: func(_ *cobra.Command, _ []string) error {
			hFn, err := hashFunction(flagHash)
			if err != nil {
				return err
			}
			cfg.ClientID = flagClientID
			cfg.Hash = hFn
			f, err := fixture.NewTrainingStepFixture(cfg)
			if err != nil {
				return err
			}
			if err := f.WriteFile(flagOutput); err != nil {
				return err
			}
			log.Info().
				Str("root_D", f.RootD).
				Str("root_G", f.RootG).
				Float64("gradient_norm", f.GradientNorm).
				Bool("clipped", f.Clipped).
				Str("output", flagOutput).
				Msg("training fixture written")
			return nil
		},
	}
	cmd.Flags().IntVar(&cfg.BatchSize, "batch-size", 8, "samples in the training batch")
	cmd.Flags().IntVar(&cfg.ModelDim, "model-dim", 32, "model dimension")
	cmd.Flags().IntVar(&cfg.DatasetSize, "dataset-size", 128, "total dataset size")
	cmd.Flags().Float64Var(&cfg.LearningRate, "learning-rate", 0.01, "SGD learning rate (alpha)")
	cmd.Flags().Float64Var(&cfg.ClipThreshold, "clip-threshold", 1.0, "gradient clipping threshold (tau)")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 42, "deterministic generation seed")
	return cmd
}
