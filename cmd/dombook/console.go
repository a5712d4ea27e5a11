package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"dombook/dom"
	"dombook/domain/orderbook"
	"dombook/infra/tape"
	"dombook/service"
)

const menu = `Order Book and Visual DOM
============================
1. Submit Order
2. Print Visual DOM
3. Populate Orderbook
4. Cancel Order
5. Trade History
`

// console is the interactive command loop. It only talks to the service.
type console struct {
	in   *bufio.Scanner
	out  io.Writer
	svc  *service.OrderService
	tape *tape.Tape // optional, source of the trade history
	dom  dom.Options
}

func newConsole(in io.Reader, out io.Writer, svc *service.OrderService, tp *tape.Tape, opts dom.Options) *console {
	return &console{in: bufio.NewScanner(in), out: out, svc: svc, tape: tp, dom: opts}
}

// run serves commands until the input is exhausted.
func (c *console) run() error {
	for {
		fmt.Fprint(c.out, menu)
		line, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}

		switch line {
		case "1":
			fmt.Fprintln(c.out, "Enter your order")
			msg, ok := c.readLine()
			if !ok {
				return c.in.Err()
			}
			c.submit(msg)
		case "2":
			c.printDOM()
		case "3":
			c.populate()
		case "4":
			fmt.Fprintln(c.out, "Enter the order id")
			raw, ok := c.readLine()
			if !ok {
				return c.in.Err()
			}
			c.cancel(raw)
		case "5":
			c.history()
		default:
			fmt.Fprintln(c.out, "Invalid Input")
		}
	}
}

func (c *console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// ---- commands ----

func (c *console) submit(msg string) {
	r, err := c.svc.SubmitMessage(msg)
	if err != nil {
		fmt.Fprintf(c.out, "Order rejected: %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "Order# %d confirmed.\n", r.OrderID)
	if r.Status == orderbook.KilledOnEntry {
		fmt.Fprintf(c.out, "ImmediateOrKill Order# %d could not be filled so it was cancelled.\n", r.OrderID)
		return
	}
	for _, t := range r.Trades {
		fmt.Fprintf(c.out, "Buy Order# %d matched @ %s for %d units.\n", t.Bid.OrderID, t.Price(), t.Quantity())
		fmt.Fprintf(c.out, "Sell Order# %d matched @ %s for %d units.\n", t.Ask.OrderID, t.Price(), t.Quantity())
	}
	switch r.Status {
	case orderbook.Filled:
		fmt.Fprintf(c.out, "Order# %d fully filled.\n", r.OrderID)
	case orderbook.PartiallyFilled:
		fmt.Fprintf(c.out, "Order# %d partially filled, %d units resting.\n", r.OrderID, r.Remaining)
	case orderbook.Killed:
		fmt.Fprintf(c.out, "Order# %d partially filled, %d units killed.\n", r.OrderID, r.Remaining)
	}
}

func (c *console) printDOM() {
	err := dom.Render(c.out, c.svc.Depth(), c.dom)
	switch {
	case errors.Is(err, dom.ErrNotEnoughOrders):
		fmt.Fprintln(c.out, "Not enough orders to print a DOM")
	case err != nil:
		fmt.Fprintf(c.out, "DOM failed: %v\n", err)
	}
}

func (c *console) populate() {
	res, err := c.svc.Populate()
	switch {
	case errors.Is(err, service.ErrAlreadyPopulated):
		fmt.Fprintln(c.out, "Orderbook has already been populated")
	case err != nil:
		fmt.Fprintf(c.out, "Populate failed: %v\n", err)
	default:
		fmt.Fprintf(c.out, "Populated %d orders, %d trades.\n", res.Orders, res.Trades)
	}
}

func (c *console) cancel(raw string) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid Input")
		return
	}
	if r := c.svc.Cancel(orderbook.OrderID(id)); r.Found {
		fmt.Fprintf(c.out, "Order# %d cancelled.\n", id)
	} else {
		fmt.Fprintf(c.out, "Order# %d not found.\n", id)
	}
}

func (c *console) history() {
	n := 0
	line := func(seq, bid, ask uint64, price orderbook.Ticks, qty int64) {
		fmt.Fprintf(c.out, "#%d  Buy Order# %d / Sell Order# %d  %d @ %s\n", seq, bid, ask, qty, price)
		n++
	}

	if c.tape != nil {
		err := c.tape.Scan(0, func(r tape.Record) error {
			line(r.Seq, r.BidOrder, r.AskOrder, orderbook.Ticks(r.Price), r.Quantity)
			return nil
		})
		if err != nil {
			fmt.Fprintf(c.out, "Trade history failed: %v\n", err)
			return
		}
	} else {
		for _, t := range c.svc.Trades() {
			line(t.Seq, uint64(t.Bid.OrderID), uint64(t.Ask.OrderID), t.Price(), t.Quantity())
		}
	}
	if n == 0 {
		fmt.Fprintln(c.out, "No trades yet")
	}
}
