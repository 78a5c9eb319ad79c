package controllers

import (
	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/pkg/ctx"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

func (p *ProductController) Index(c *ctx.Context) {
	products, err := p.service.List(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(products)
}

// Store answers 201 with the bare product, unlike the other writes.
func (p *ProductController) Store(c *ctx.Context) {
	var in services.ProductModel
	if !c.BindJSON(&in) {
		return
	}
	product, err := p.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(product)
}

func (p *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var in services.ProductUpdate
	if !c.BindJSON(&in) {
		return
	}
	change, err := p.service.Update(c.Context(), id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(mutated(msgUpdated, change.Rows))
}

func (p *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	change, err := p.service.Delete(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(mutated(msgDeleted, change.Rows))
}
