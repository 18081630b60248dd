package main

import (
	"context"
	"fmt"
	"strings"
	"syscall"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/ipc-worker/internal/transport"
	"github.com/kubev2v/ipc-worker/pkg/client"
	"github.com/kubev2v/ipc-worker/test/e2e/infra"
	"github.com/kubev2v/ipc-worker/test/e2e/service"
)

var _ = Describe("ipc-worker", Ordered, func() {
	var workerSvc *service.WorkerSvc

	start := func(wc infra.WorkerConfig) {
		c, err := infraManager.StartWorker(wc)
		Expect(err).NotTo(HaveOccurred())
		workerSvc = service.NewWorkerService(c)
	}

	AfterEach(func() {
		if CurrentSpecReport().Failed() {
			GinkgoWriter.Println(infraManager.Logs())
		}
		Expect(infraManager.RemoveWorker()).To(Succeed())
	})

	Context("identity processor", func() {
		// Given a worker with delays between 50ms and 400ms
		// When 50 requests are sent at once
		// Then each id is answered exactly once with its own payload
		It("should answer every request exactly once", func() {
			start(infra.WorkerConfig{Processor: "identity", MinDelay: "50ms", MaxDelay: "400ms"})

			type sent struct {
				id      transport.Token
				payload string
				ch      <-chan client.Response
			}
			var all []sent
			for i := range 50 {
				payload := fmt.Sprintf("payload-%d", i)
				id, ch, err := workerSvc.Submit(payload)
				Expect(err).NotTo(HaveOccurred())
				all = append(all, sent{id: id, payload: payload, ch: ch})
			}

			for _, s := range all {
				var resp client.Response
				Eventually(s.ch, 5*time.Second).Should(Receive(&resp))
				Expect(resp.ID).To(Equal(s.id))
				Expect(resp.Result).To(Equal(s.payload))
			}
			Expect(workerSvc.InFlight()).To(Equal(0))
		})

		It("should answer the example request", func() {
			start(infra.WorkerConfig{Processor: "identity", MinDelay: "1s", MaxDelay: "4s"})

			ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
			defer cancel()

			began := time.Now()
			resp, err := workerSvc.Call(ctx, "hello")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Result).To(Equal("hello"))
			Expect(time.Since(began)).To(BeNumerically(">=", time.Second))
		})
	})

	Context("dictionary processor", func() {
		It("should count repeated entries", func() {
			start(infra.WorkerConfig{Processor: "dictionary", MinDelay: "10ms", MaxDelay: "20ms"})

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			for i := 1; i <= 3; i++ {
				resp, err := workerSvc.Call(ctx, "Gopher")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Result).To(Equal(fmt.Sprintf("gopher:%d", i)))
			}

			resp, err := workerSvc.Call(ctx, "   ")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Failed()).To(BeTrue())
		})
	})

	Context("lifecycle", func() {
		// Given pending requests
		// When the parent closes stdin
		// Then the pending requests are answered and the worker exits cleanly
		It("should drain pending tasks when stdin closes", func() {
			start(infra.WorkerConfig{Processor: "identity", MinDelay: "200ms", MaxDelay: "300ms"})

			_, ch, err := workerSvc.Submit("late")
			Expect(err).NotTo(HaveOccurred())
			Expect(infraManager.CloseInput()).To(Succeed())

			Eventually(ch, 3*time.Second).Should(Receive())
			Expect(infraManager.Wait(5 * time.Second)).To(Succeed())
		})

		// Given a request whose delay will not elapse
		// When the worker receives SIGTERM
		// Then it logs its exit, exits without answering and without error
		It("should abandon pending tasks on SIGTERM", func() {
			start(infra.WorkerConfig{Processor: "identity", MinDelay: "1h", MaxDelay: "2h"})

			_, ch, err := workerSvc.Submit("never")
			Expect(err).NotTo(HaveOccurred())
			Eventually(infraManager.Logs, 3*time.Second).Should(ContainSubstring("worker receiving message"))

			Expect(infraManager.Signal(syscall.SIGTERM)).To(Succeed())

			Expect(infraManager.Wait(5 * time.Second)).To(Succeed())
			Expect(ch).NotTo(Receive())
			Expect(infraManager.Logs()).To(ContainSubstring("worker exiting"))
			Expect(strings.Count(infraManager.Logs(), "worker exiting")).To(Equal(1))
		})

		It("should reject requests beyond max pending", func() {
			start(infra.WorkerConfig{Processor: "identity", MinDelay: "1h", MaxDelay: "2h", MaxPending: 1})

			_, first, err := workerSvc.Submit("a")
			Expect(err).NotTo(HaveOccurred())
			_, second, err := workerSvc.Submit("b")
			Expect(err).NotTo(HaveOccurred())

			var resp client.Response
			Eventually(second, 3*time.Second).Should(Receive(&resp))
			Expect(resp.Err).To(Equal("worker overloaded"))
			Consistently(first, 200*time.Millisecond).ShouldNot(Receive())
		})
	})

	Context("admin server", func() {
		It("should report worker counters", func() {
			start(infra.WorkerConfig{Processor: "identity", MinDelay: "10ms", MaxDelay: "20ms", HTTPPort: cfg.AdminPort})
			admin := service.NewAdminService(fmt.Sprintf("http://127.0.0.1:%d", cfg.AdminPort))
			Eventually(admin.Health, 5*time.Second, 100*time.Millisecond).Should(Succeed())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for range 3 {
				_, err := workerSvc.Call(ctx, "ping")
				Expect(err).NotTo(HaveOccurred())
			}

			Eventually(func(g Gomega) {
				status, err := admin.Status()
				g.Expect(err).NotTo(HaveOccurred())
				g.Expect(status.Counters.Received).To(Equal(uint64(3)))
				g.Expect(status.Counters.Completed).To(Equal(uint64(3)))
				g.Expect(status.Pending).To(Equal(0))
			}, 3*time.Second).Should(Succeed())
		})
	})
})
