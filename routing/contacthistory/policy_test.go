package contacthistory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/oppnet/message"
	"github.com/sarchlab/oppnet/routing"
	"github.com/sarchlab/oppnet/routing/contacthistory"
	"github.com/sarchlab/oppnet/sim"
)

type clock struct{}

func (clock) CurrentTime() sim.VTimeInSec { return 0 }

var _ = Describe("Policy", func() {
	var (
		mockCtrl *gomock.Controller
		cfg      contacthistory.Config
	)

	newHost := func(id string, bufferSize int) *routing.Router {
		return routing.MakeBuilder().
			WithTimeTeller(clock{}).
			WithBufferSize(bufferSize).
			WithFilter(contacthistory.NewPolicy(cfg)).
			Build(id, message.HostID(id))
	}

	linkTo := func(peer *routing.Router) *MockLink {
		l := NewMockLink(mockCtrl)
		l.EXPECT().Peer().Return(peer).AnyTimes()
		l.EXPECT().IsUp().Return(true).AnyTimes()

		return l
	}

	meet := func(self, peer *routing.Router) *MockLink {
		l := linkTo(peer)
		self.ContactUp(l)

		return l
	}

	historyOf := func(r *routing.Router) contacthistory.Strata {
		return r.Filter().(*contacthistory.Policy).Strata()
	}

	policyOf := func(r *routing.Router) *contacthistory.Policy {
		return r.Filter().(*contacthistory.Policy)
	}

	msgTo := func(dst string) *message.Message {
		m := message.New("m1", "x", message.HostID(dst), 10, 0, 0)
		m.Copies = 4
		m.Payload = message.HistoryState{}

		return m
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		cfg = contacthistory.Config{
			LowBufferFactor:     4,
			HighBufferFactor:    2,
			MuleBufferThreshold: 1_000_000,
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should reject non-positive buffer factors", func() {
		Expect(func() {
			contacthistory.NewPolicy(contacthistory.Config{HighBufferFactor: 1})
		}).To(Panic())
	})

	It("should count direct encounters", func() {
		x := newHost("x", 1000)
		d := newHost("d", 1000)

		meet(x, d)
		x.ContactDown(d)
		meet(x, d)

		Expect(historyOf(x).FirstHop).To(Equal(map[message.HostID]int{"d": 2}))
	})

	It("should learn the hosts a contact can reach", func() {
		x := newHost("x", 1000)
		y := newHost("y", 1000)
		d := newHost("d", 1000)
		e := newHost("e", 1000)
		meet(y, d)
		meet(y, x)
		meet(e, y)
		meet(y, e)

		meet(x, y)

		strata := historyOf(x)
		Expect(strata.FirstHop).To(HaveKey(message.HostID("y")))
		Expect(strata.MultiHop).To(Equal(map[message.HostID]bool{
			"d": true,
			"e": true,
		}))
	})

	It("should move a host from multi hop to first hop when met", func() {
		x := newHost("x", 1000)
		y := newHost("y", 1000)
		d := newHost("d", 1000)
		meet(y, d)
		meet(x, y)
		Expect(historyOf(x).MultiHop).To(HaveKey(message.HostID("d")))

		meet(x, d)

		strata := historyOf(x)
		Expect(strata.MultiHop).NotTo(HaveKey(message.HostID("d")))
		Expect(strata.FirstHop).To(HaveKeyWithValue(message.HostID("d"), 1))
	})

	It("should keep first hop and multi hop disjoint", func() {
		hosts := []*routing.Router{}
		for _, id := range []string{"a", "b", "c", "d", "e"} {
			hosts = append(hosts, newHost(id, 1000))
		}

		for round := 0; round < 3; round++ {
			for i, h := range hosts {
				peer := hosts[(i+round+1)%len(hosts)]
				meet(h, peer)
				meet(peer, h)
			}
		}

		for _, h := range hosts {
			strata := historyOf(h)
			for id := range strata.FirstHop {
				Expect(strata.MultiHop).NotTo(HaveKey(id))
			}

			Expect(strata.Knows(h.ID())).To(BeFalse())
		}
	})

	It("should record mules", func() {
		x := newHost("x", 1000)
		mule := newHost("mule", 1_000_000)

		meet(x, mule)

		Expect(historyOf(x).Mules).To(HaveKey(message.HostID("mule")))
		Expect(policyOf(x).IsMule(mule)).To(BeTrue())
		Expect(policyOf(x).IsMule(x)).To(BeFalse())
	})

	Context("when deciding to forward", func() {
		var x, y, d *routing.Router

		BeforeEach(func() {
			x = newHost("x", 1000)
			y = newHost("y", 1000)
			d = newHost("d", 1000)
		})

		It("should forward to a mule that can reach the destination", func() {
			mule := newHost("mule", 1_000_000)
			meet(mule, d)
			meet(x, d)

			Expect(policyOf(x).Admit(x, msgTo("d"), linkTo(mule))).To(BeTrue())
			Expect(policyOf(x).Admit(x, msgTo("z"), linkTo(mule))).To(BeFalse())
		})

		It("should forward to a contact that knows an unknown destination", func() {
			meet(y, d)

			Expect(policyOf(x).Admit(x, msgTo("d"), linkTo(y))).To(BeTrue())
			Expect(policyOf(y).Admit(y, msgTo("d"), linkTo(x))).To(BeFalse())
		})

		It("should forward to a frequent contact with headroom", func() {
			for i := 0; i < 2; i++ {
				meet(x, d)
			}

			for i := 0; i < 5; i++ {
				meet(y, d)
			}

			x.CreateMessage("fill", "z", 900, 0)

			Expect(policyOf(x).Admit(x, msgTo("d"), linkTo(y))).To(BeTrue())

			y.CreateMessage("fill", "z", 600, 0)

			Expect(policyOf(x).Admit(x, msgTo("d"), linkTo(y))).To(BeFalse())
		})

		It("should not forward without buffer pressure", func() {
			meet(x, d)
			for i := 0; i < 5; i++ {
				meet(y, d)
			}

			Expect(policyOf(x).Admit(x, msgTo("d"), linkTo(y))).To(BeFalse())
		})

		It("should forward from a multi hop host to a first hop host", func() {
			meet(y, d)
			meet(x, y)
			z := newHost("z", 1000)
			meet(z, d)
			x.CreateMessage("fill", "q", 900, 0)

			Expect(historyOf(x).MultiHop).To(HaveKey(message.HostID("d")))
			Expect(policyOf(x).Admit(x, msgTo("d"), linkTo(z))).To(BeTrue())
		})
	})
})
