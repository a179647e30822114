package perccli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"percolation/pkg/errorutil"
	"percolation/pkg/initutil"
	"percolation/pkg/logutil"
	"percolation/pkg/percolation"
	"percolation/pkg/report"

	"github.com/spf13/cobra"
)

type replayOptions struct {
	outputOptions
	// 从文件、字符串或者标准输入中来
	Kind  string
	InArg string
	Steps bool
}

// ReplayCmd 按给定顺序打开格点，报告什么时候开始渗透
func ReplayCmd() *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "回放一个打开序列，报告何时开始渗透",
		Long: `回放一个打开序列，报告何时开始渗透

输入格式：第一个整数是网格尺寸 n，之后每两个整数是一个要打开的格点 (row, col)，
坐标从 1 开始，整数之间用任意空白分隔。

3
1 1
2 1
3 1

Examples:

percolation replay -k file -i input3.txt
percolation replay -k file -i input3.txt --steps
cat input3.txt | percolation replay -t json
percolation replay -k str -i "2 1 1 2 1" -t sh
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.fromConfig(cmd, initutil.GetConfig()); err != nil {
				return err
			}
			return opts.run(cmd)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", "", "输入来源类别（默认 stdin / file / str）")
	cmd.Flags().StringVarP(&opts.InArg, "inarg", "i", "", "输入来源的值(文件路径或者字符串)")
	cmd.Flags().BoolVar(&opts.Steps, "steps", false, "输出每一步打开的格点")

	return cmd
}

func (opts *replayOptions) reader(cmd *cobra.Command) (io.Reader, func(), error) {
	switch opts.Kind {
	case "file":
		f, err := os.Open(opts.InArg)
		if err != nil {
			return nil, nil, errorutil.NewExitErrorWithMessage(errorutil.CodeMissingInput, "无法打开文件 "+opts.InArg, err)
		}
		return f, func() { f.Close() }, nil
	case "str":
		return strings.NewReader(opts.InArg), func() {}, nil
	case "", "stdin":
		// 没有任何参数的情况 或者 stdin 的情况
		return cmd.InOrStdin(), func() {}, nil
	default:
		return nil, nil, errorutil.InvalidArgument("未知输入来源: %q，请使用 file / str / stdin", opts.Kind)
	}
}

func (opts *replayOptions) run(cmd *cobra.Command) error {
	r, closeFn, err := opts.reader(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	n, sites, err := percolation.ParseOpenSequence(r)
	if err != nil {
		return err
	}
	logutil.Info("replay: n=%d 共 %d 个格点", n, len(sites))

	res, err := percolation.Replay(n, sites)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	// 文本格式逐行打印，其它格式把轨迹放进文档里
	if opts.Steps && opts.Format == "txt" {
		for _, s := range res.Steps {
			fmt.Fprintf(out, "%d %d\n", s.Row, s.Col)
			if s.Percolates {
				fmt.Fprintln(out, "Percolates!")
			}
		}
	}

	doc, err := report.ReplayDocument(res, opts.Steps && opts.Format != "txt")
	if err != nil {
		return errorutil.NewExitError(errorutil.CodeInternalErr, err)
	}
	return report.Write(out, opts.Format, doc, opts.VarName, opts.JSONFormat)
}
