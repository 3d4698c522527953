package main

import (
	"chinitsu/common/config"
	"chinitsu/common/log"
	"chinitsu/common/metrics"
	"chinitsu/core/container"
	"chinitsu/core/domain/vo"
	"chinitsu/gate/app"
	"chinitsu/gate/drill"
	"chinitsu/runtime/game/engines/chinitsu"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configFile string
	difficulty string
	drillCount int
)

var rootCmd = &cobra.Command{
	Use:   "chinitsu",
	Short: "清一色听牌练习",
	Long:  `清一色听牌练习：HTTP 服务、手牌分析和终端练习`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.InitConfig(configFile)
		conf := config.Current()
		log.InitLog(conf.AppName, conf.Log.Level)
		config.OnChange(func(next *config.Config) {
			log.SetLevel(next.Log.Level)
		})
		log.Info("配置文件: %s, storage=%s, httpPort=%d", configFile, conf.StorageConf.Driver, conf.HttpPort)

		if conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务退出: %v", err)
				}
			}()
		}

		return app.Run(cmd.Context())
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <hand>",
	Short: "分析手牌：13 张给出听牌，14 张判断和牌",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hand, err := chinitsu.ParseHand(strings.Join(args, ""))
		if err != nil {
			return err
		}
		c, err := newMemoryContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		resp, err := c.QuizService.Analyze(cmd.Context(), hand)
		if err != nil {
			return err
		}
		drill.PrintAnalysis(color.Output, resp)
		return nil
	},
}

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "终端听牌练习",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newMemoryContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		d := drill.New(c.QuizService, vo.ParseDifficulty(difficulty), os.Stdin, color.Output)
		_, err = d.Run(cmd.Context(), drillCount)
		return err
	},
}

// newMemoryContainer 本地命令不连接数据库
func newMemoryContainer(ctx context.Context) (*container.QuizContainer, error) {
	conf, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	log.InitLog(conf.AppName, "warn")
	conf.StorageConf.Driver = config.StorageMemory
	return container.NewQuizContainer(ctx, conf)
}

func init() {
	serveCmd.Flags().StringVar(&configFile, "configFile", "", "resource file")
	serveCmd.MarkFlagRequired("configFile")
	drillCmd.Flags().StringVar(&configFile, "configFile", "", "resource file")
	drillCmd.Flags().StringVar(&difficulty, "difficulty", string(vo.DifficultyNormal), "easy | normal | hard")
	drillCmd.Flags().IntVar(&drillCount, "count", 10, "题目数量")

	rootCmd.AddCommand(serveCmd, analyzeCmd, drillCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
