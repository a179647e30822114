package main

import (
	"fmt"
	"os"

	"percolation/pkg/errorutil"
	"percolation/pkg/initutil"
	"percolation/pkg/logutil"
	"percolation/pkg/perccli"

	"github.com/spf13/cobra"
)

const TOOL_VERSION = "1.0.0+20261018"

func main() {
	var rootCmd = &cobra.Command{
		Use:     "percolation",
		Version: TOOL_VERSION,
		Short:   fmt.Sprintf("percolation v%s 渗流模型与渗流阈值的蒙特卡洛估计", TOOL_VERSION),
		Long: "  ■ □ ■ ■ □\n" +
			"  ■ ■ □ ■ □     percolation\n" +
			"  □ ■ ■ □ ■\n" +
			"  □ □ ■ ■ ■\n" +
			"  ■ □ □ □ ■\n" +
			fmt.Sprintf("\npercolation v%s 支持 stats/replay 子命令\n", TOOL_VERSION),
	}

	rootCmd.AddCommand(perccli.StatsCmd(), perccli.ReplayCmd())
	var logFile, configFile string
	logLevel := logutil.WARN

	// 定义全局flag(屁股后面带P的函数才支持短选项)
	rootCmd.PersistentFlags().VarP(&logLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "l", "stderr", "日志文件名(stdout/stderr 表示标准输出/标准错误)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "JSON 配置文件路径")
	// 阻止 Cobra 在命令参数错误时输出帮助
	rootCmd.SilenceUsage = true
	// 阻止Cobra自动打印RunEs返回的错误内容
	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidUsage, "命令行参数错误", err)
	})

	// PersistentPreRunE 回调，这个钩子会在用户的命令解析完成、flag 值填充后执行
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := initutil.Init(configFile); err != nil {
			return err
		}
		conf := initutil.GetConfig()

		// 命令行优先于配置文件
		if !cmd.Flags().Changed("log-level") {
			if err := logLevel.Set(conf.Log.Level); err != nil {
				return errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError, "log.level 配置有误", err)
			}
		}
		if !cmd.Flags().Changed("log-file") {
			logFile = conf.Log.File
		}
		logutil.InitLogger(logFile, logLevel)
		logutil.Debug("配置: %v", conf)
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		// cobra 自己产生的错误(参数个数、未知子命令)都算用法错误
		if !errorutil.HasExitCode(err) {
			err = errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidUsage, "命令行用法错误", err)
		}
		msg, code := errorutil.FormatErrorAndCode(err)
		logutil.Error("命令执行失败: %v (根因: %v)", err, errorutil.RootError(err))
		fmt.Fprintln(os.Stderr, msg)
		logutil.CloseLogger()
		os.Exit(code)
	}

	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	logutil.CloseLogger()
	os.Exit(errorutil.CodeSuccess)
}
