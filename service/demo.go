package service

import (
	"github.com/shopspring/decimal"

	"dombook/domain/orderbook"
)

type demoOrder struct {
	side  orderbook.Side
	id    orderbook.OrderID
	price string
	qty   int64
}

// demoOrders seeds a two-sided book around 100.00 with some trading
// history on most levels.
var demoOrders = []demoOrder{
	{orderbook.Buy, 10000, "98.00", 30},
	{orderbook.Sell, 20000, "98.00", 30},
	{orderbook.Buy, 30000, "98.25", 20},
	{orderbook.Sell, 40000, "98.25", 20},
	{orderbook.Buy, 50000, "98.50", 40},
	{orderbook.Sell, 60000, "98.50", 40},
	{orderbook.Buy, 70000, "98.75", 35},
	{orderbook.Sell, 80000, "98.75", 35},
	{orderbook.Buy, 90000, "99.00", 50},
	{orderbook.Sell, 100000, "99.00", 50},
	{orderbook.Buy, 110000, "99.25", 25},
	{orderbook.Sell, 120000, "99.25", 25},
	{orderbook.Buy, 130000, "99.50", 45},
	{orderbook.Sell, 140000, "99.50", 45},
	{orderbook.Buy, 150000, "99.75", 55},
	{orderbook.Sell, 160000, "99.75", 55},
	{orderbook.Buy, 170000, "100.00", 60},
	{orderbook.Sell, 180000, "100.00", 60},
	{orderbook.Buy, 190000, "100.25", 50},
	{orderbook.Sell, 200000, "100.25", 50},
	{orderbook.Buy, 210000, "100.50", 40},
	{orderbook.Sell, 220000, "100.50", 40},
	{orderbook.Buy, 203000, "100.75", 35},
	{orderbook.Sell, 240000, "100.75", 35},
	{orderbook.Buy, 250000, "101.00", 30},
	{orderbook.Sell, 260000, "101.00", 30},
	{orderbook.Buy, 270000, "101.25", 25},
	{orderbook.Sell, 280000, "101.25", 25},
	{orderbook.Buy, 290000, "101.50", 20},
	{orderbook.Sell, 300000, "101.50", 20},
	{orderbook.Buy, 310000, "101.75", 15},
	{orderbook.Sell, 320000, "101.75", 15},
	{orderbook.Buy, 330000, "102.00", 10},
	{orderbook.Sell, 340000, "102.00", 10},
	{orderbook.Buy, 350000, "102.25", 5},
	{orderbook.Buy, 10001, "99.00", 50},
	{orderbook.Buy, 20001, "99.25", 40},
	{orderbook.Buy, 30001, "99.50", 60},
	{orderbook.Buy, 40001, "99.75", 70},
	{orderbook.Buy, 50001, "100.00", 10},
	{orderbook.Buy, 60001, "100.00", 5},
	{orderbook.Buy, 70001, "100.25", 30},
	{orderbook.Buy, 80001, "100.50", 20},
	{orderbook.Buy, 90001, "100.75", 10},
	{orderbook.Sell, 100001, "100.50", 80},
	{orderbook.Sell, 110001, "100.25", 90},
	{orderbook.Sell, 120001, "100.00", 80},
	{orderbook.Sell, 130001, "100.75", 10},
	{orderbook.Sell, 140001, "101.00", 50},
	{orderbook.Sell, 150001, "101.25", 40},
	{orderbook.Sell, 160001, "101.50", 60},
	{orderbook.Sell, 170001, "101.75", 70},
	{orderbook.Sell, 180001, "102.00", 80},
	{orderbook.Buy, 190001, "98.75", 20},
	{orderbook.Buy, 200001, "98.50", 30},
	{orderbook.Buy, 210001, "98.25", 40},
	{orderbook.Buy, 220001, "98.00", 50},
	{orderbook.Sell, 230001, "102.25", 40},
	{orderbook.Sell, 240001, "102.50", 30},
	{orderbook.Sell, 250001, "102.75", 20},
	{orderbook.Sell, 260001, "103.00", 10},
	{orderbook.Buy, 270001, "99.00", 35},
	{orderbook.Sell, 280001, "101.75", 25},
	{orderbook.Buy, 290001, "99.50", 45},
	{orderbook.Sell, 300001, "100.75", 15},
	{orderbook.Buy, 330001, "99.75", 25},
	{orderbook.Sell, 340001, "99.75", 25},
	{orderbook.Buy, 350001, "99.25", 30},
}

func (d demoOrder) order() (*orderbook.Order, error) {
	return orderbook.NewOrder(d.id, d.side, orderbook.Resting, decimal.RequireFromString(d.price), d.qty)
}
