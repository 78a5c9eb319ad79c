package controllers

import (
	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/pkg/ctx"
)

type SupplierController struct {
	service *services.SupplierService
}

func NewSupplierController(service *services.SupplierService) *SupplierController {
	return &SupplierController{service: service}
}

func (s *SupplierController) Index(c *ctx.Context) {
	suppliers, err := s.service.List(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(suppliers)
}

func (s *SupplierController) Store(c *ctx.Context) {
	var in services.SupplierModel
	if !c.BindJSON(&in) {
		return
	}
	change, err := s.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(mutated(msgInserted, change.Rows))
}

func (s *SupplierController) Update(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var in services.SupplierUpdate
	if !c.BindJSON(&in) {
		return
	}
	change, err := s.service.Update(c.Context(), id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(mutated(msgUpdated, change.Rows))
}

func (s *SupplierController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	change, err := s.service.Delete(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(mutated(msgDeleted, change.Rows))
}
