// 数据维护脚本：修复旧数据的缺失字段、批量重算连续天数、检查日期格式。
//
// 建议顺序: verify-dates → fix-metadata → recalculate
//
// 用法: go run ./scripts/maintenance <command> [--config configs]

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"habit_tracker_backend/internal/app"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/pkg/database"
	"habit_tracker_backend/pkg/logger"

	"github.com/alecthomas/kong"
)

// Context 各子命令共享的运行环境
type Context struct {
	Maintenance *service.MaintenanceService
	Out         io.Writer
}

func (c *Context) print(v interface{}) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type RecalculateCmd struct{}

func (cmd *RecalculateCmd) Run(ctx *Context) error {
	report, err := ctx.Maintenance.RecalculateAll(context.Background())
	if err != nil {
		return err
	}
	if err := ctx.print(report); err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d habits failed to recalculate", report.Failed)
	}
	return nil
}

type FixMetadataCmd struct{}

func (cmd *FixMetadataCmd) Run(ctx *Context) error {
	report, err := ctx.Maintenance.FixMetadata(context.Background())
	if err != nil {
		return err
	}
	return ctx.print(report)
}

type VerifyDatesCmd struct{}

func (cmd *VerifyDatesCmd) Run(ctx *Context) error {
	issues, err := ctx.Maintenance.VerifyDates(context.Background())
	if err != nil {
		return err
	}
	if err := ctx.print(issues); err != nil {
		return err
	}
	if len(issues) > 0 {
		return fmt.Errorf("%d stored dates are not YYYY-MM-DD", len(issues))
	}
	return nil
}

var CLI struct {
	Config string `help:"Config directory." type:"path" default:"configs"`

	Recalculate RecalculateCmd `cmd:"" help:"Recompute streaks for every habit."`
	FixMetadata FixMetadataCmd `cmd:"" name:"fix-metadata" help:"Fill in missing frequency and start date."`
	VerifyDates VerifyDatesCmd `cmd:"" name:"verify-dates" help:"Report stored dates that are not YYYY-MM-DD."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("maintenance"),
		kong.Description("Habit tracker data maintenance"),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法读取配置文件: %v\n", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "数据库连接失败: %v\n", err)
		os.Exit(1)
	}

	// 维护任务不使用缓存
	application := app.New(cfg, db, nil, nil)

	err = kctx.Run(&Context{Maintenance: application.Maintenance(), Out: os.Stdout})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
