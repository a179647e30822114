package perccli

import (
	"time"

	"percolation/pkg/errorutil"
	"percolation/pkg/initutil"
	"percolation/pkg/logutil"
	"percolation/pkg/percstats"
	"percolation/pkg/report"

	"github.com/spf13/cobra"
)

type statsOptions struct {
	outputOptions
	Sampler     percstats.SamplerKind
	Seed        uint64
	WithSamples bool
}

// StatsCmd 蒙特卡洛估计渗流阈值
func StatsCmd() *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats [n] [trials]",
		Short: "在 n×n 网格上做 trials 次试验，估计渗流阈值",
		Long: `在 n×n 网格上做 trials 次独立试验，估计渗流阈值

每次试验随机打开关闭的格点直到系统渗透，记录此时打开格点的比例，
最后输出均值、样本标准差和 95% 置信区间。

n 和 trials 省略时使用配置文件 grid.n / grid.trials 的值。

Examples:

percolation stats 200 100
percolation stats 200 100 -s shuffle --seed 42 -t json -F one
eval -- "$(percolation stats 64 30 -t sh -v PERC)" ; echo "${PERC[mean]}"
`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := initutil.GetConfig()
			if err := opts.fromConfig(cmd, conf); err != nil {
				return err
			}

			n, trials := conf.Grid.N, conf.Grid.Trials
			var err error
			if len(args) > 0 {
				if n, err = parseIntArg("n", args[0]); err != nil {
					return err
				}
			}
			if len(args) > 1 {
				if trials, err = parseIntArg("trials", args[1]); err != nil {
					return err
				}
			}

			if !cmd.Flags().Changed("sampler") {
				if err := opts.Sampler.Set(conf.Random.Sampler); err != nil {
					return errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError, "random.sampler 配置有误", err)
				}
			}
			if !cmd.Flags().Changed("seed") {
				opts.Seed = conf.Random.Seed
			}

			return opts.run(cmd, n, trials)
		},
	}

	opts.bind(cmd)
	opts.Sampler = percstats.SamplerRejection
	cmd.Flags().VarP(&opts.Sampler, "sampler", "s", "随机抽取关闭格点的方式(rejection|shuffle)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "随机种子，0 表示按时间取种子")
	cmd.Flags().BoolVar(&opts.WithSamples, "samples", false, "同时输出每次试验的样本")

	return cmd
}

func (opts *statsOptions) run(cmd *cobra.Command, n, trials int) error {
	statsOpts := []percstats.Option{percstats.WithSampler(opts.Sampler)}
	if opts.Seed != 0 {
		statsOpts = append(statsOpts, percstats.WithSeed(opts.Seed))
	}

	logutil.Info("stats: n=%d trials=%d sampler=%s seed=%d", n, trials, opts.Sampler, opts.Seed)
	start := time.Now()
	st, err := percstats.New(n, trials, statsOpts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logutil.Info("stats: %d 次试验耗时 %s", trials, elapsed)

	doc, err := report.StatsDocument(st, report.StatsOptions{
		Sampler:     opts.Sampler,
		Seed:        opts.Seed,
		Elapsed:     elapsed,
		WithSamples: opts.WithSamples,
	})
	if err != nil {
		return errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}
	return report.Write(cmd.OutOrStdout(), opts.Format, doc, opts.VarName, opts.JSONFormat)
}
