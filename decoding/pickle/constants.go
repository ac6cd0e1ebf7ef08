package pickle

import "github.com/ethereum/go-ethereum/common"

// Pickle finance jar addresses on ethereum mainnet
var (
	PickleLooks         = common.HexToAddress("0xb4EBc2C371182DeEa04B2264B9ff5AC4F0159C69")
	PickleRbnEth        = common.HexToAddress("0x506748d736b77f51c5b490e4aC6c26B8c3975b14")
	PickleScrv          = common.HexToAddress("0x68d14d66B2B0d6E157c06Dc8Fefa3D8ba0e66a89")
	PickleCrvRenBtc     = common.HexToAddress("0x2E35392F4c36EBa7eCAFE4de34199b2373Af22ec")
	Pickle3pool         = common.HexToAddress("0x1BB74b5DdC1f4fC91D6f9E7906cf68bc93538e33")
	PickleStecrv        = common.HexToAddress("0x77C8A58D940a322Aea02dBc8EE4A30350D4239AD")
	PickleDaiEth        = common.HexToAddress("0xCffA068F1E44D98D3753966eBd58D4CFe3BB5162")
	PickleUsdcEth       = common.HexToAddress("0x53Bf2E62fA20e2b4522f05de3597890Ec1b352C6")
	PickleUsdtEth       = common.HexToAddress("0x09FC573c502037B149ba87782ACC81cF093EC6ef")
	PickleWbtcEth       = common.HexToAddress("0xc80090AA05374d336875907372EE4ee636CBC562")
	PickleDai           = common.HexToAddress("0x6949Bb624E8e8A90F87cD2058139fcd77D2F3F87")
	PickleEthAleth      = common.HexToAddress("0xCbA1FE4Fdbd90531EFD929F1A1831F38e91cff1e")
	PickleLqty          = common.HexToAddress("0x65B2532474f717D5A8ba38078B78106D56118bbb")
	PickleDaiEthSushi   = common.HexToAddress("0x55282dA27a3a02ffe599f6D11314D239dAC89135")
	PickleUsdcEthSushi  = common.HexToAddress("0x8c2D16B7F6D3F989eb4878EcF13D695A7d504E43")
	PickleUsdtEthSushi  = common.HexToAddress("0xa7a37aE5Cb163a3147DE83F15e15D8E5f94D6bCE")
	PickleWbtcEthSushi  = common.HexToAddress("0xde74b6c547bd574c3527316a2eE30cd8F6041525")
	PickleYfiEth        = common.HexToAddress("0x3261D9408604CC8607b687980D40135aFA26FfED")
	PickleBacDai        = common.HexToAddress("0x4Cac56929B98d4C52dDfDF998329622013Fed2a5")
	PickleMicUsdt       = common.HexToAddress("0xC66583Dd4E25b3cfc8D881F6DbaD8288C7f5Fd30")
	PickleMisUsdt       = common.HexToAddress("0x0FAA189afE8aE97dE1d2F01E471297678842146d")
	PickleYvecrvEth     = common.HexToAddress("0x5Eff6d166D66BacBC1BF52E2C54dD391AE6b1f48")
	PickleBasDai        = common.HexToAddress("0xcF45563514a24b10563aC0c9fECCd3476b00DF45")
	PickleMirUst        = common.HexToAddress("0x3Bcd97dCA7b1CED292687c97702725F37af01CaC")
	PickleMtsla         = common.HexToAddress("0xaFB2FE266c215B5aAe9c4a9DaDC325cC7a497230")
	PickleMaapl         = common.HexToAddress("0xF303B35D5bCb4d9ED20fB122F5E268211dEc0EBd")
	PickleMqqq          = common.HexToAddress("0x7C8de3eE2244207A54b57f45286c9eE1465fee9f")
	PickleMslv          = common.HexToAddress("0x1ed1fD33b62bEa268e527A622108fe0eE0104C07")
	PickleMbaba         = common.HexToAddress("0x1CF137F651D8f0A4009deD168B442ea2E870323A")
	PickleEthSushi      = common.HexToAddress("0xECb520217DccC712448338B0BB9b08Ce75AD61AE")
	PickleFeiTribe      = common.HexToAddress("0xC1513C1b0B359Bc5aCF7b772100061217838768B")
	PickleSaddleD4      = common.HexToAddress("0xe6487033F5C8e2b4726AF54CA1449FEC18Bd1484")
	PickleLusdEth       = common.HexToAddress("0x927e3bCBD329e89A8765B52950861482f0B227c4")
	PickleAlcxEth       = common.HexToAddress("0x9eb0aAd5Bb943D3b2F7603Deb772faa35f60aDF9")
	PickleYvboostEth    = common.HexToAddress("0xCeD67a187b923F0E5ebcc77C7f2F7da20099e378")
	PickleCvxEth        = common.HexToAddress("0xDCfAE44244B3fABb5b351b01Dc9f050E589cF24F")
	PickleRlyEth        = common.HexToAddress("0x0989a227E7c50311f7De61e5e61F7c28Df8936f0")
	PickleYearnUsdc     = common.HexToAddress("0xEB801AB73E9A2A482aA48CaCA13B1954028F4c94")
	PickleYearnLusd3crv = common.HexToAddress("0x4fFe73Cf2EEf5E8C8E0E10160bCe440a029166D2")
	PickleFrax3crv      = common.HexToAddress("0xd632f22692FaC7611d2AA1C0D552930D43CAEd3B")
	PickleIronbank      = common.HexToAddress("0x4E9806345fb39FFebd70A01f177A675805019ba8")
	PickleMim3crv       = common.HexToAddress("0x1Bf62aCb8603Ef7F3A0DFAF79b25202fe1FAEE06")
	PickleFoxEth        = common.HexToAddress("0xeb8174F94FDAcCB099422d9A816B8E17d5e393E3")
	PickleCvxcrvCrv     = common.HexToAddress("0xF1478A8387C449c55708a3ec11c143c35daf5E74")
	PickleCvxcrv        = common.HexToAddress("0xB245280Fd1795f5068DEf8E8f32DB7846b030b2B")
	PickleTruEth        = common.HexToAddress("0x1d92e1702D7054f74eAC3a9569AeB87FC93e101D")
	PickleNewoUsdc      = common.HexToAddress("0xBc57294Fc20bD23983dB598fa6B3f306aA1a414f")
	PickleLooksEth      = common.HexToAddress("0x69CC22B240bdcDf4A33c7B3D04a660D4cF714370")
)

// Contracts holds the jars decoded as pickle deposits and withdrawals. The ironbank
// and MIM/3CRV jars are known but not decoded.
var Contracts = newSet(
	PickleLooks,
	PickleRbnEth,
	PickleScrv,
	PickleCrvRenBtc,
	Pickle3pool,
	PickleStecrv,
	PickleDaiEth,
	PickleUsdcEth,
	PickleUsdtEth,
	PickleWbtcEth,
	PickleDai,
	PickleEthAleth,
	PickleLqty,
	PickleDaiEthSushi,
	PickleUsdcEthSushi,
	PickleUsdtEthSushi,
	PickleWbtcEthSushi,
	PickleYfiEth,
	PickleBacDai,
	PickleMicUsdt,
	PickleMisUsdt,
	PickleYvecrvEth,
	PickleBasDai,
	PickleMirUst,
	PickleMtsla,
	PickleMaapl,
	PickleMqqq,
	PickleMslv,
	PickleMbaba,
	PickleEthSushi,
	PickleFeiTribe,
	PickleSaddleD4,
	PickleLusdEth,
	PickleAlcxEth,
	PickleYvboostEth,
	PickleCvxEth,
	PickleRlyEth,
	PickleYearnUsdc,
	PickleYearnLusd3crv,
	PickleFrax3crv,
	PickleFoxEth,
	PickleCvxcrvCrv,
	PickleCvxcrv,
	PickleTruEth,
	PickleNewoUsdc,
	PickleLooksEth,
)

func newSet(addresses ...common.Address) map[common.Address]struct{} {
	set := make(map[common.Address]struct{}, len(addresses))
	for _, address := range addresses {
		set[address] = struct{}{}
	}
	return set
}

func IsPickleContract(address common.Address) bool {
	_, ok := Contracts[address]
	return ok
}
