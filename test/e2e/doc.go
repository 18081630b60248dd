/*
Package main provides end-to-end tests running the ipc-worker binary as a
child process, the way a parent process would use it.

# Package Structure

	test/e2e/
	├── main.go          Entry point: flags, config, InfraManager setup, Ginkgo runner
	├── tests.go         Ginkgo specs (round trip, dictionary, lifecycle, admin API)
	├── doc.go           This file
	├── infra/
	│   ├── infra.go     InfraManager interface + WorkerConfig
	│   └── process.go   ProcessInfraManager (os/exec based)
	└── service/
	    └── service.go   WorkerSvc (stdin/stdout client) and AdminSvc (HTTP)

# InfraManager

	type InfraManager interface {
	    StartWorker(cfg) / RemoveWorker()
	    CloseInput() / Signal(sig) / Wait(timeout)
	    Logs()
	}

The worker's stderr is captured and printed when a spec fails.

# Running

	go build -o bin/ipc-worker ./cmd/ipc-worker
	go run ./test/e2e -worker-binary bin/ipc-worker
*/
package main
