// Zenith — запуск команды по всем проектам monorepo с кэшированием результатов.
//
// Использование:
//
//	zenith --monorepo PATH [--config FILE] [--debug] [--json] <command> [flags]
//
// Команды:
//
//	run       Выполнить команду в каждом проекте (с кэшем)
//	affected  Показать затронутые проекты
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/Zenith/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	// Ctrl-C отменяет run и убивает запущенные команды
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := cli.NewRootCmd(version).ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
