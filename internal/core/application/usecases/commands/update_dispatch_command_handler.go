package commands

import (
	"context"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

// UpdateDispatchResult reports which fields changed and which were refused.
type UpdateDispatchResult struct {
	Applied  []string
	Rejected []errs.FieldError
}

// UpdateDispatchCommandHandler applies a partial dispatch update. Each field is
// applied or rejected on its own; a status change advances the shipment in the
// same transaction.
type UpdateDispatchCommandHandler struct {
	uowFactory  DispatchUoWFactory
	directory   ports.PartyDirectory
	coordinator services.DispatchCoordinator
	clock       clock.Clock
}

func NewUpdateDispatchCommandHandler(
	uowFactory DispatchUoWFactory,
	directory ports.PartyDirectory,
	clk clock.Clock,
) UpdateDispatchCommandHandler {
	return UpdateDispatchCommandHandler{
		uowFactory:  uowFactory,
		directory:   directory,
		coordinator: services.NewDispatchCoordinator(),
		clock:       clk,
	}
}

// Handle fails with errs.ErrObjectNotFound when the dispatch does not exist. Field
// problems do not fail the call; they are listed in the result.
func (h UpdateDispatchCommandHandler) Handle(ctx context.Context, cmd UpdateDispatchCommand) (UpdateDispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateDispatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateDispatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	dispatchRepo := uow.DispatchRepository()
	shipmentRepo := uow.ShipmentRepository()

	s, d, err := lockDispatch(ctx, uow, cmd.DispatchID())
	if err != nil {
		return UpdateDispatchResult{}, err
	}

	result, shipmentChanged, err := h.apply(ctx, cmd, s, d)
	if err != nil {
		return UpdateDispatchResult{}, err
	}
	if len(result.Applied) == 0 {
		return result, nil
	}

	d.Touch(cmd.Actor(), h.clock.Now(), result.Applied)
	if err = dispatchRepo.Update(ctx, d); err != nil {
		return UpdateDispatchResult{}, err
	}
	if shipmentChanged {
		if err = shipmentRepo.Update(ctx, s); err != nil {
			return UpdateDispatchResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateDispatchResult{}, err
	}
	return result, nil
}

// apply returns an error only for failures that must abort the whole update,
// such as the directory being unreachable.
func (h UpdateDispatchCommandHandler) apply(
	ctx context.Context,
	cmd UpdateDispatchCommand,
	s *shipment.Shipment,
	d *dispatch.Dispatch,
) (UpdateDispatchResult, bool, error) {
	var result UpdateDispatchResult
	ch := cmd.Changes()

	record := func(field string, err error) {
		if err != nil {
			result.Rejected = append(result.Rejected, errs.NewFieldError(field, err))
			return
		}
		result.Applied = append(result.Applied, field)
	}

	if ch.CounterpartyID.Supplied() {
		var err error = errs.NewValueIsRequiredError(DispatchFieldCounterparty)
		if id, ok := ch.CounterpartyID.Value(); ok {
			err = h.withParty(ctx, kernel.PartyCompany, id, DispatchFieldCounterparty, d.ChangeCounterparty)
		}
		if isFatal(err) {
			return UpdateDispatchResult{}, false, err
		}
		record(DispatchFieldCounterparty, err)
	}

	if ch.ManagerID.Supplied() {
		var err error
		if id, ok := ch.ManagerID.Value(); ok {
			err = h.withParty(ctx, kernel.PartyUser, id, DispatchFieldManager, d.AssignManager)
		} else {
			d.ClearManager()
		}
		if isFatal(err) {
			return UpdateDispatchResult{}, false, err
		}
		record(DispatchFieldManager, err)
	}

	if ch.DriverID.Supplied() {
		var err error
		if id, ok := ch.DriverID.Value(); ok {
			err = h.withParty(ctx, kernel.PartyDriver, id, DispatchFieldDriver, d.AssignDriver)
		} else {
			d.ClearDriver()
		}
		if isFatal(err) {
			return UpdateDispatchResult{}, false, err
		}
		record(DispatchFieldDriver, err)
	}

	if ch.Vehicle.Supplied() {
		var err error
		if vehicle, ok := ch.Vehicle.Value(); ok {
			err = d.ChangeVehicle(vehicle)
		} else {
			d.ClearVehicle()
		}
		record(DispatchFieldVehicle, err)
	}

	if ch.AgreedPrice.Supplied() {
		var err error = errs.NewValueIsRequiredError(DispatchFieldAgreedPrice)
		if price, ok := ch.AgreedPrice.Value(); ok {
			err = d.ChangePrice(price)
		}
		record(DispatchFieldAgreedPrice, err)
	}

	if ch.Memo.Supplied() {
		memo, _ := ch.Memo.Value()
		d.ChangeMemo(memo)
		record(DispatchFieldMemo, nil)
	}

	shipmentChanged := false
	if ch.Status.Supplied() {
		var err error = errs.NewValueIsRequiredError(DispatchFieldStatus)
		if target, ok := ch.Status.Value(); ok {
			before := s.FlowStatus()
			err = h.coordinator.ChangeStatus(s, d, target, cmd.Actor(), h.clock.Now())
			shipmentChanged = err == nil && s.FlowStatus() != before
		}
		record(DispatchFieldStatus, err)
	}

	return result, shipmentChanged, nil
}

func (h UpdateDispatchCommandHandler) withParty(
	ctx context.Context,
	kind kernel.PartyKind,
	id kernel.UUID,
	field string,
	assign func(kernel.Snapshot) error,
) error {
	snapshot, err := resolveParty(ctx, h.directory, kind, id, field)
	if err != nil {
		return err
	}
	return assign(snapshot)
}

// isFatal separates infrastructure failures from field-level rejections.
func isFatal(err error) bool {
	return err != nil && errs.KindOf(err) == errs.KindUnknown
}
