package main

import (
	"fmt"
	"os"

	"github.com/gonewx/chainreact/internal/cmd"
	"github.com/gonewx/chainreact/pkg/embedded"
)

func main() {
	// 初始化嵌入资源（必须在加载任何配置之前）
	embedded.Init(dataFS)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
