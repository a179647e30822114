package perccli

import (
	"strconv"

	"percolation/pkg/errorutil"
	"percolation/pkg/initutil"
	"percolation/pkg/report"

	"github.com/spf13/cobra"
)

// outputOptions 是 stats 和 replay 共用的输出选项
type outputOptions struct {
	Format     string
	VarName    string
	JSONFormat report.JSONFormat
}

func (o *outputOptions) bind(cmd *cobra.Command) {
	o.JSONFormat = report.JSONFormatMul
	cmd.Flags().StringVarP(&o.Format, "format", "t", "txt", "输出格式：txt/json/sh")
	cmd.Flags().StringVarP(&o.VarName, "varname", "v", "RESULT", "sh 输出变量名")
	// 输出的JSON的格式 (一行/多行美化打印)
	cmd.Flags().VarP(&o.JSONFormat, "jsonformat", "F", "输出的 JSON 的格式(mul|one)，代表多行或者一行")
}

// fromConfig 命令行没有显式指定的选项使用配置文件里的值
func (o *outputOptions) fromConfig(cmd *cobra.Command, conf initutil.Config) error {
	if !cmd.Flags().Changed("format") {
		o.Format = conf.Output.Format
	}
	if !cmd.Flags().Changed("varname") {
		o.VarName = conf.Output.VarName
	}
	if !cmd.Flags().Changed("jsonformat") {
		if err := o.JSONFormat.Set(conf.Output.JSONFormat); err != nil {
			return errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError, "output.jsonformat 配置有误", err)
		}
	}
	return nil
}

// parseIntArg 只检查是不是整数，正负由具体模块判断
func parseIntArg(name, val string) (int, error) {
	v, err := strconv.Atoi(val)
	if err != nil {
		return 0, errorutil.InvalidArgument("%s 必须是整数: %q", name, val)
	}
	return v, nil
}
