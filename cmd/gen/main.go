package main

import (
	"bites/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.RestaurantModel{},
		model.ProductModel{},
		model.CartModel{},
		model.CartLineModel{},
		model.OrderModel{},
		model.OrderLineModel{},
		model.AddressModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
