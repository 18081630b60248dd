package client_test

import (
	"context"
	"errors"
	"io"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/ipc-worker/internal/processor"
	"github.com/kubev2v/ipc-worker/internal/transport"
	"github.com/kubev2v/ipc-worker/internal/worker"
	"github.com/kubev2v/ipc-worker/pkg/client"
	"github.com/kubev2v/ipc-worker/pkg/simulator"
)

var _ = Describe("Client", func() {
	var (
		ctx      context.Context
		cancel   context.CancelFunc
		reqW     *io.PipeWriter
		respW    *io.PipeWriter
		c        *client.Client
		listened chan error
	)

	// start wires a worker and a client together through two pipes, the
	// way a parent process talks to its child over stdin/stdout.
	start := func(proc processor.Processor, delays simulator.DelaySource) {
		reqR, rw := io.Pipe()
		respR, pw := io.Pipe()
		reqW, respW = rw, pw

		ch := transport.NewStdio(reqR, respW)
		w := worker.New[transport.Token](ctx, ch, proc, worker.WithDelaySource(delays))
		l := worker.NewListener[transport.Token](w)

		listened = make(chan error, 1)
		go func() { listened <- ch.Listen(ctx, l.Handle) }()

		c = client.New(reqW, respR)
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
	})

	AfterEach(func() {
		cancel()
		reqW.Close()
		respW.Close()
	})

	// Given a worker running the identity processor with no delay
	// When the parent calls ("req1", "hello")
	// Then it should get ("req1", "hello") back
	It("should round-trip a request end to end", func() {
		start(processor.Identity, simulator.Fixed(0))

		resp, err := c.Call(ctx, transport.StringToken("req1"), "hello")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.ID).To(Equal(transport.StringToken("req1")))
		Expect(resp.Result).To(Equal("hello"))
		Expect(c.InFlight()).To(BeZero())
	})

	It("should correlate responses arriving out of order", func() {
		start(processor.Identity, simulator.NewSequence(300*time.Millisecond, 10*time.Millisecond))

		first, err := c.Send(transport.StringToken("first"), "a")
		Expect(err).NotTo(HaveOccurred())
		second, err := c.Send(transport.StringToken("second"), "b")
		Expect(err).NotTo(HaveOccurred())

		var resp client.Response
		Eventually(second, time.Second).Should(Receive(&resp))
		Expect(resp.Result).To(Equal("b"))
		Expect(first).NotTo(Receive())
		Eventually(first, time.Second).Should(Receive(&resp))
		Expect(resp.Result).To(Equal("a"))
	})

	It("should answer duplicate ids separately", func() {
		start(processor.Identity, simulator.NewSequence(10*time.Millisecond, 100*time.Millisecond))

		one, err := c.Send(transport.StringToken("A"), "one")
		Expect(err).NotTo(HaveOccurred())
		two, err := c.Send(transport.StringToken("A"), "two")
		Expect(err).NotTo(HaveOccurred())

		var resp client.Response
		Eventually(one, time.Second).Should(Receive(&resp))
		Expect(resp.Result).To(Equal("one"))
		Eventually(two, time.Second).Should(Receive(&resp))
		Expect(resp.Result).To(Equal("two"))
	})

	It("should keep numeric ids intact", func() {
		start(processor.Identity, simulator.Fixed(0))

		id, err := transport.NewToken(12345)
		Expect(err).NotTo(HaveOccurred())

		resp, err := c.Call(ctx, id, "x")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.ID.String()).To(Equal("12345"))
	})

	It("should deliver processing failures as error responses", func() {
		start(processor.Func(func(_ context.Context, _ string) (string, error) {
			return "", errors.New("no such word")
		}), simulator.Fixed(0))

		resp, err := c.Call(ctx, transport.StringToken("req1"), "hello")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Failed()).To(BeTrue())
		Expect(resp.Err).To(Equal("no such word"))
	})

	It("should stop waiting when the caller's context expires", func() {
		start(processor.Identity, simulator.Fixed(time.Second))

		callCtx, callCancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer callCancel()

		_, err := c.Call(callCtx, transport.StringToken("slow"), "x")
		Expect(err).To(MatchError(context.DeadlineExceeded))
		Expect(c.InFlight()).To(BeZero())
	})

	// Given a request pending in the worker
	// When the worker side of the channel goes away
	// Then the caller should get ErrClosed instead of waiting forever
	It("should fail pending calls when the channel closes", func() {
		start(processor.Identity, simulator.Fixed(time.Second))

		errs := make(chan error, 1)
		go func() {
			_, err := c.Call(ctx, transport.StringToken("req1"), "x")
			errs <- err
		}()
		Eventually(c.InFlight, time.Second).Should(Equal(1))

		cancel()
		respW.Close()

		Eventually(errs, time.Second).Should(Receive(MatchError(client.ErrClosed)))
		Eventually(c.Done(), time.Second).Should(BeClosed())

		_, err := c.Send(transport.StringToken("late"), "x")
		Expect(err).To(MatchError(client.ErrClosed))
	})

	It("should stop the listener when the parent closes its end", func() {
		start(processor.Identity, simulator.Fixed(0))

		reqW.Close()
		Eventually(listened, time.Second).Should(Receive(BeNil()))
	})
})
