package engine_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foldsim/foldsim/internal/engine"
	"github.com/foldsim/foldsim/internal/forcefield"
	"github.com/foldsim/foldsim/internal/geom"
	"github.com/foldsim/foldsim/internal/integrators"
)

func straightChainRequest(level engine.Level) *engine.PhysicsRequest {
	return &engine.PhysicsRequest{
		InitialPositions: []geom.Vec3{
			{0, 0, 0},
			{3.8, 0, 0},
			{7.6, 0, 0},
			{11.4, 0, 0},
		},
		ResidueTypes:     []string{"ALA", "GLY", "SER", "VAL"},
		RotationCommands: []engine.RotationCommand{{Residue: 1, Angle: 0.1}, {Residue: 2, Angle: -0.1}},
		PhysicsLevel:     level,
		Temperature:      300.0,
		SimulationTime:   1.0,
	}
}

var _ = Describe("Level", func() {
	It("parses case-insensitively and falls back to toy", func() {
		Expect(engine.ParseLevel("GB")).To(Equal(engine.LevelGB))
		Expect(engine.ParseLevel("Coarse")).To(Equal(engine.LevelCoarse))
		Expect(engine.ParseLevel("FULL")).To(Equal(engine.LevelFull))
		Expect(engine.ParseLevel("nonsense")).To(Equal(engine.LevelToy))
		Expect(engine.ParseLevel("")).To(Equal(engine.LevelToy))
	})

	It("maps levels to the fixed parameter table", func() {
		toy := engine.LevelToy.Params()
		Expect(toy.Timestep).To(Equal(0.01))
		Expect(toy.Steps).To(Equal(100))
		Expect(toy.Friction).To(BeZero())
		Expect(toy.AllAtom).To(BeFalse())

		coarse := engine.LevelCoarse.Params()
		Expect(coarse.Timestep).To(Equal(0.005))
		Expect(coarse.Steps).To(Equal(200))
		Expect(coarse.Friction).To(Equal(1.0))

		gb := engine.LevelGB.Params()
		Expect(gb.Timestep).To(Equal(0.002))
		Expect(gb.Steps).To(Equal(500))
		Expect(gb.Friction).To(Equal(5.0))
		Expect(gb.AllAtom).To(BeTrue())

		full := engine.LevelFull.Params()
		Expect(full.Timestep).To(Equal(0.001))
		Expect(full.Steps).To(Equal(1000))
		Expect(full.Friction).To(Equal(10.0))
		Expect(full.AllAtom).To(BeTrue())
	})
})

var _ = Describe("Engine.Run", func() {
	It("rejects mismatched positions and types without running", func() {
		e := engine.New(engine.LevelToy, integrators.DefaultSeed)
		request := straightChainRequest(engine.LevelToy)
		request.ResidueTypes = request.ResidueTypes[:3]

		outcome, err := e.Run(request)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, engine.ErrLengthMismatch)).To(BeTrue())
		Expect(outcome).To(BeNil())
	})

	It("completes the toy scenario with sane diagnostics", func() {
		e := engine.New(engine.LevelToy, integrators.DefaultSeed)
		outcome, err := e.Run(straightChainRequest(engine.LevelToy))
		Expect(err).NotTo(HaveOccurred())

		Expect(outcome.FinalPositions).To(HaveLen(4))
		Expect(outcome.FinalAngles).To(HaveLen(4))
		Expect(math.IsNaN(outcome.Energy)).To(BeFalse())
		Expect(math.IsInf(outcome.Energy, 0)).To(BeFalse())
		Expect(outcome.RMSD).To(BeNumerically(">=", 0))
		Expect(outcome.RadiusOfGyration).To(BeNumerically(">=", 0))
		Expect(outcome.SimulationTime).To(BeNumerically(">", 0))
	})

	It("applies rotation commands to phi only", func() {
		e := engine.New(engine.LevelToy, integrators.DefaultSeed)
		outcome, err := e.Run(straightChainRequest(engine.LevelToy))
		Expect(err).NotTo(HaveOccurred())

		Expect(outcome.FinalAngles[1].Phi).To(BeNumerically("~", 0.1, 1e-12))
		Expect(outcome.FinalAngles[2].Phi).To(BeNumerically("~", -0.1, 1e-12))
		for _, pair := range outcome.FinalAngles {
			Expect(pair.Psi).To(BeZero())
		}
	})

	It("ignores rotation commands outside the chain", func() {
		e := engine.New(engine.LevelToy, integrators.DefaultSeed)
		request := straightChainRequest(engine.LevelToy)
		request.RotationCommands = []engine.RotationCommand{{Residue: 99, Angle: 1.0}, {Residue: -1, Angle: 1.0}}

		_, err := e.Run(request)
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports zero kinetic energy on the toy (Verlet) path", func() {
		e := engine.New(engine.LevelToy, integrators.DefaultSeed)
		outcome, err := e.Run(straightChainRequest(engine.LevelToy))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.KineticEnergy).To(BeZero())
		Expect(outcome.Energy).To(Equal(outcome.PotentialEnergy))
	})

	It("samples the diagnostic series every tenth step", func() {
		e := engine.New(engine.LevelToy, integrators.DefaultSeed)
		outcome, err := e.Run(straightChainRequest(engine.LevelToy))
		Expect(err).NotTo(HaveOccurred())

		traj := outcome.TrajectoryData
		Expect(traj).NotTo(BeNil())
		Expect(traj.NumSteps).To(Equal(100))
		Expect(traj.Timestep).To(Equal(0.01))
		Expect(traj.PhysicsLevel).To(Equal("toy"))
		Expect(traj.Energies).To(HaveLen(10))
		Expect(traj.Temperatures).To(HaveLen(10))
	})

	It("notifies the observer once per sample", func() {
		e := engine.New(engine.LevelToy, integrators.DefaultSeed)
		var steps []int
		_, err := e.RunWithObserver(straightChainRequest(engine.LevelToy),
			func(step int, energy, temperature float64) {
				steps = append(steps, step)
			})
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(HaveLen(10))
		Expect(steps[0]).To(Equal(0))
		Expect(steps[9]).To(Equal(90))
	})

	It("is reproducible for the same seed on a stochastic level", func() {
		run := func() []geom.Vec3 {
			e := engine.New(engine.LevelCoarse, 1234)
			outcome, err := e.Run(straightChainRequest(engine.LevelCoarse))
			Expect(err).NotTo(HaveOccurred())
			return outcome.FinalPositions
		}
		Expect(run()).To(Equal(run()))
	})

	It("runs the gb and full levels on the all-atom field", func() {
		for _, level := range []engine.Level{engine.LevelGB, engine.LevelFull} {
			e := engine.New(level, integrators.DefaultSeed)
			outcome, err := e.Run(straightChainRequest(level))
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsNaN(outcome.Energy)).To(BeFalse())
			Expect(outcome.FinalPositions).To(HaveLen(4))
		}
	})

	It("supports Brownian dynamics through NewCustom", func() {
		ff := forcefield.NewCoarseGrained()
		integ := integrators.NewBrownian(0, 300.0, 1.0, integrators.DefaultSeed)
		e := engine.NewCustom(engine.LevelCoarse, ff, integ)

		outcome, err := e.Run(straightChainRequest(engine.LevelCoarse))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcome.KineticEnergy).To(BeNumerically(">", 0))
	})
})

var _ = Describe("EstimateSpan", func() {
	It("halves the applied angle at the toy level", func() {
		est := engine.EstimateSpan(&engine.SpanRequest{
			AngleDegrees: 10.0,
			Temperature:  300.0,
			DurationMS:   100,
			Level:        engine.LevelToy,
		})
		Expect(est.AppliedAngle).To(Equal(5.0))
		Expect(est.Metrics).To(HaveKey("dihedral_energy"))
		Expect(est.SimulationTimePS).To(Equal(1.0))
	})

	It("applies the full angle at higher levels and adds solvation", func() {
		for _, level := range []engine.Level{engine.LevelGB, engine.LevelFull} {
			est := engine.EstimateSpan(&engine.SpanRequest{
				AngleDegrees: 10.0,
				Temperature:  300.0,
				DurationMS:   100,
				Level:        level,
			})
			Expect(est.AppliedAngle).To(Equal(10.0))
			Expect(est.Metrics).To(HaveKey("solvation_energy"))
		}
	})

	It("prices Gibbs energy from the entropy estimate", func() {
		est := engine.EstimateSpan(&engine.SpanRequest{
			AngleDegrees: 10.0,
			Temperature:  300.0,
			Level:        engine.LevelCoarse,
		})
		want := est.DeltaEnergy - 300.0*est.DeltaEntropy*0.001
		Expect(est.GibbsEnergy).To(BeNumerically("~", want, 1e-12))
	})
})

var _ = Describe("Ensemble", func() {
	It("produces one outcome per replica", func() {
		ens := engine.NewEnsemble(engine.LevelToy, 4, integrators.DefaultSeed)
		outcomes, err := ens.Run(context.Background(), straightChainRequest(engine.LevelToy))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcomes).To(HaveLen(4))
		for _, o := range outcomes {
			Expect(math.IsNaN(o.Energy)).To(BeFalse())
		}
	})

	It("gives identical replicas on the deterministic toy level", func() {
		ens := engine.NewEnsemble(engine.LevelToy, 3, integrators.DefaultSeed)
		outcomes, err := ens.Run(context.Background(), straightChainRequest(engine.LevelToy))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcomes[1].Energy).To(Equal(outcomes[0].Energy))
		Expect(outcomes[2].Energy).To(Equal(outcomes[0].Energy))
	})

	It("spreads replicas across seeds on a thermostatted level", func() {
		ens := engine.NewEnsemble(engine.LevelCoarse, 3, integrators.DefaultSeed)
		outcomes, err := ens.Run(context.Background(), straightChainRequest(engine.LevelCoarse))
		Expect(err).NotTo(HaveOccurred())
		Expect(outcomes[1].Energy).NotTo(Equal(outcomes[0].Energy))
	})

	It("summarizes mean metrics across replicas", func() {
		stats := engine.Summarize([]*engine.RotationOutcome{
			{Energy: -2, RMSD: 1, RadiusOfGyration: 4},
			{Energy: -4, RMSD: 3, RadiusOfGyration: 6},
		})
		Expect(stats.Runs).To(Equal(2))
		Expect(stats.MeanEnergy).To(Equal(-3.0))
		Expect(stats.MeanRMSD).To(Equal(2.0))
		Expect(stats.MeanRg).To(Equal(5.0))
	})

	It("stops when the context is already cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ens := engine.NewEnsemble(engine.LevelToy, 2, integrators.DefaultSeed)
		_, err := ens.Run(ctx, straightChainRequest(engine.LevelToy))
		Expect(err).To(HaveOccurred())
	})
})
